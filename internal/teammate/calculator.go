// Package teammate computes head-to-head performance deltas between drivers
// sharing identical machinery, removing car performance from the comparison.
package teammate

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// driverSeason is one driver's per-session results indexed by session.
type driverSeason struct {
	points     map[string]float64
	qualifying map[string]float64
	finish     map[string]int
}

// Compute derives a TeammateDelta for every paired driver with at least one
// common session. Every metric is computed over the session intersection:
// sessions where one side is missing are excluded from the mean, never
// treated as zero. Drivers with no usable overlap are omitted; the caller
// reports them as missing coverage.
func Compute(results []model.SessionResult, pairs []model.TeammatePair) (map[string]model.TeammateDelta, error) {
	if err := model.ValidatePairs(pairs); err != nil {
		return nil, err
	}

	seasons := collect(results)
	deltas := make(map[string]model.TeammateDelta)

	for _, pair := range pairs {
		for _, driverID := range []string{pair.DriverA, pair.DriverB} {
			teammateID, _ := pair.Other(driverID)
			delta, ok := compare(driverID, teammateID, seasons)
			if !ok {
				slog.Debug("no common sessions for pairing",
					"driver", driverID, "teammate", teammateID)
				continue
			}
			deltas[driverID] = delta
		}
	}

	return deltas, nil
}

func collect(results []model.SessionResult) map[string]driverSeason {
	seasons := make(map[string]driverSeason)
	for _, r := range results {
		season, ok := seasons[r.DriverID]
		if !ok {
			season = driverSeason{
				points:     make(map[string]float64),
				qualifying: make(map[string]float64),
				finish:     make(map[string]int),
			}
			seasons[r.DriverID] = season
		}
		season.points[r.SessionID] = r.Points
		if r.HasQualifyingTime() {
			season.qualifying[r.SessionID] = r.QualifyingTime
		}
		if r.FinishPosition > 0 {
			season.finish[r.SessionID] = r.FinishPosition
		}
	}
	return seasons
}

func compare(driverID, teammateID string, seasons map[string]driverSeason) (model.TeammateDelta, bool) {
	driver, ok := seasons[driverID]
	if !ok {
		return model.TeammateDelta{}, false
	}
	teammate, ok := seasons[teammateID]
	if !ok {
		return model.TeammateDelta{}, false
	}

	delta := model.TeammateDelta{
		DriverID:   driverID,
		TeammateID: teammateID,
	}

	// Points over common sessions, so a mid-season replacement is compared
	// only over the overlap.
	for sessionID, pts := range driver.points {
		teammatePts, both := teammate.points[sessionID]
		if !both {
			continue
		}
		delta.PointsDelta += pts - teammatePts
		delta.CommonRaceSessions++
	}
	if delta.CommonRaceSessions == 0 {
		return model.TeammateDelta{}, false
	}

	// Qualifying gap across sessions where both set a representative lap.
	var qualiGaps []float64
	for sessionID, driverTime := range driver.qualifying {
		teammateTime, both := teammate.qualifying[sessionID]
		if !both {
			continue
		}
		qualiGaps = append(qualiGaps, driverTime-teammateTime)
	}
	delta.CommonQualifyingSessions = len(qualiGaps)
	if len(qualiGaps) > 0 {
		delta.QualifyingDelta = stat.Mean(qualiGaps, nil)
	}

	// Position gap: teammate finish minus driver finish, so finishing ahead
	// is positive.
	var positionGaps []float64
	for sessionID, driverPos := range driver.finish {
		teammatePos, both := teammate.finish[sessionID]
		if !both {
			continue
		}
		positionGaps = append(positionGaps, float64(teammatePos-driverPos))
	}
	if len(positionGaps) > 0 {
		delta.PositionDelta = stat.Mean(positionGaps, nil)
	}

	delta.Coverage = float64(delta.CommonRaceSessions) / float64(unionSize(driver.points, teammate.points))

	return delta, true
}

func unionSize(a, b map[string]float64) int {
	union := make(map[string]bool, len(a)+len(b))
	for k := range a {
		union[k] = true
	}
	for k := range b {
		union[k] = true
	}
	return len(union)
}
