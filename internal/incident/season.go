package incident

import (
	"errors"
	"sort"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// trackLimitThreshold is the per-session deletion count at which track-limit
// violations become indicative. A single deletion is common for every driver.
const trackLimitThreshold = 3

// Stats counts how a season's messages were consumed.
type Stats struct {
	Processed   int
	Incidents   int
	Skipped     int
	Malformed   int
	NoiseOrNone int
}

// SeasonClassifier runs the per-message classifier across a whole season,
// accumulating the session-scoped state the single-message contract cannot
// hold: track-limit deletion tallies.
type SeasonClassifier struct {
	classifier *Classifier
	weights    model.SeverityWeights
	progress   func(done, total int)
}

// NewSeasonClassifier builds a season-level classifier.
func NewSeasonClassifier(weights model.SeverityWeights) (*SeasonClassifier, error) {
	c, err := NewClassifier(weights)
	if err != nil {
		return nil, err
	}
	return &SeasonClassifier{classifier: c, weights: weights}, nil
}

// OnProgress registers a callback invoked after each message is consumed.
func (s *SeasonClassifier) OnProgress(fn func(done, total int)) {
	s.progress = fn
}

type sessionDriver struct {
	SessionID string
	DriverID  string
}

// Run classifies every message, attributing through the per-session rosters.
// Unattributed and malformed messages are logged and counted, never fatal to
// the run.
func (s *SeasonClassifier) Run(messages []model.EventMessage, rosters map[string]Roster) ([]model.Incident, Stats, error) {
	var incidents []model.Incident
	var stats Stats
	deletions := make(map[sessionDriver]int)

	for _, msg := range messages {
		stats.Processed++
		if s.progress != nil {
			s.progress(stats.Processed, len(messages))
		}

		if IsTrackLimitDeletion(msg.RawText) {
			if msg.DriverNumber == nil {
				stats.Skipped++
				continue
			}
			driverID, ok := rosters[msg.SessionID][*msg.DriverNumber]
			if !ok {
				stats.Skipped++
				continue
			}
			deletions[sessionDriver{msg.SessionID, driverID}]++
			continue
		}

		found, err := s.classifier.Classify(msg, rosters[msg.SessionID])
		switch {
		case errors.Is(err, common.ErrUnattributedEvent):
			stats.Skipped++
			common.LogDebug("skipping unattributed event", common.Fields{
				"session": msg.SessionID,
				"text":    msg.RawText,
			})
		case errors.Is(err, common.ErrMalformedEvent):
			stats.Malformed++
			common.LogError(err, "dropping malformed event message", common.Fields{
				"session": msg.SessionID,
			})
		case err != nil:
			return nil, stats, err
		case len(found) == 0:
			stats.NoiseOrNone++
		default:
			incidents = append(incidents, found...)
			stats.Incidents += len(found)
		}
	}

	incidents = append(incidents, s.trackLimitIncidents(deletions)...)
	stats.Incidents = len(incidents)

	return incidents, stats, nil
}

// trackLimitIncidents converts per-session deletion tallies into incidents.
// Only drivers at or past the threshold score, and only their excess over the
// tolerated two deletions counts, one incident per excess deletion.
func (s *SeasonClassifier) trackLimitIncidents(deletions map[sessionDriver]int) []model.Incident {
	keys := make([]sessionDriver, 0, len(deletions))
	for k := range deletions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].SessionID != keys[j].SessionID {
			return keys[i].SessionID < keys[j].SessionID
		}
		return keys[i].DriverID < keys[j].DriverID
	})

	var incidents []model.Incident
	for _, key := range keys {
		count := deletions[key]
		if count < trackLimitThreshold {
			continue
		}
		excess := count - (trackLimitThreshold - 1)
		for i := 0; i < excess; i++ {
			incidents = append(incidents, model.Incident{
				DriverID:  key.DriverID,
				SessionID: key.SessionID,
				Kind:      model.KindTrackLimitsPersistent,
				Severity:  s.weights[model.KindTrackLimitsPersistent],
			})
		}
	}
	return incidents
}
