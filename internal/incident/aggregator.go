package incident

import (
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// AggregateRisk folds a season's classified incidents into per-driver risk
// profiles. It is a pure fold with no hidden state: re-running it on the same
// incident multiset yields identical profiles, and no incident is counted
// twice. The weight table is injected so seasons can tune scoring without
// code change.
func AggregateRisk(incidents []model.Incident, weights model.SeverityWeights) map[string]model.DriverRiskProfile {
	profiles := make(map[string]model.DriverRiskProfile)

	for _, inc := range incidents {
		profile, ok := profiles[inc.DriverID]
		if !ok {
			profile = model.DriverRiskProfile{
				DriverID: inc.DriverID,
				Counts:   make(map[model.IncidentKind]int),
			}
		}
		profile.Counts[inc.Kind]++
		profile.TotalRisk += weights[inc.Kind]
		profiles[inc.DriverID] = profile
	}

	return profiles
}

// ZeroProfile returns the profile for a driver with no recorded incidents.
// Risk derives from a full scan of the season's messages, so an absent driver
// genuinely scored zero; this is a known value, not missing data.
func ZeroProfile(driverID string) model.DriverRiskProfile {
	return model.DriverRiskProfile{
		DriverID: driverID,
		Counts:   make(map[model.IncidentKind]int),
	}
}
