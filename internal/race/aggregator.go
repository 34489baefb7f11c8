// Package race derives season race-craft metrics from per-lap timing:
// lap-time consistency, grid-to-finish position change, and tyre degradation
// across compound stints.
package race

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// minLapsPerRace is the smallest number of timed laps for a race to count
// toward a driver's season metrics.
const minLapsPerRace = 3

// Aggregate folds lap records and session results into one RaceFeatureSet per
// driver. Drivers with no race meeting the lap minimum are omitted.
func Aggregate(laps []model.LapRecord, results []model.SessionResult) (map[string]model.RaceFeatureSet, error) {
	for _, lap := range laps {
		if err := lap.Validate(); err != nil {
			return nil, err
		}
	}

	byDriver := make(map[string]map[string][]model.LapRecord)
	for _, lap := range laps {
		sessions, ok := byDriver[lap.DriverID]
		if !ok {
			sessions = make(map[string][]model.LapRecord)
			byDriver[lap.DriverID] = sessions
		}
		sessions[lap.SessionID] = append(sessions[lap.SessionID], lap)
	}

	positions := make(map[string][]float64)
	for _, r := range results {
		if r.GridPosition <= 0 || r.FinishPosition <= 0 {
			continue
		}
		// Sign flipped so gaining places is positive.
		positions[r.DriverID] = append(positions[r.DriverID],
			float64(r.GridPosition-r.FinishPosition))
	}

	features := make(map[string]model.RaceFeatureSet)
	for driverID, sessions := range byDriver {
		fs, ok := buildFeatureSet(driverID, sessions, positions[driverID])
		if !ok {
			continue
		}
		features[driverID] = fs
	}

	return features, nil
}

func buildFeatureSet(driverID string, sessions map[string][]model.LapRecord, positionChanges []float64) (model.RaceFeatureSet, bool) {
	var sessionSpreads []float64
	var stintDegradations []float64
	races := 0

	sessionIDs := make([]string, 0, len(sessions))
	for id := range sessions {
		sessionIDs = append(sessionIDs, id)
	}
	sort.Strings(sessionIDs)

	for _, sessionID := range sessionIDs {
		sessionLaps := sessions[sessionID]
		sort.Slice(sessionLaps, func(i, j int) bool {
			return sessionLaps[i].LapNumber < sessionLaps[j].LapNumber
		})
		if len(sessionLaps) < minLapsPerRace {
			continue
		}
		races++

		// Spread is per race, then averaged, so slow and fast circuits in
		// one season cannot masquerade as driver inconsistency.
		var cleanTimes []float64
		for _, lap := range sessionLaps {
			if !lap.IsOutlier {
				cleanTimes = append(cleanTimes, lap.LapTime)
			}
		}
		if len(cleanTimes) >= 2 {
			sessionSpreads = append(sessionSpreads, stat.StdDev(cleanTimes, nil))
		}

		for _, stint := range segmentStints(sessionLaps) {
			if deg, ok := stint.degradation(); ok {
				stintDegradations = append(stintDegradations, deg)
			}
		}
	}

	if races == 0 {
		return model.RaceFeatureSet{}, false
	}

	fs := model.RaceFeatureSet{
		DriverID:       driverID,
		RacesCompleted: races,
	}
	if len(sessionSpreads) > 0 {
		fs.Consistency = stat.Mean(sessionSpreads, nil)
	}
	if len(positionChanges) > 0 {
		fs.PositionChange = stat.Mean(positionChanges, nil)
	}
	if len(stintDegradations) > 0 {
		fs.TyreDegradation = stat.Mean(stintDegradations, nil)
	}
	return fs, true
}
