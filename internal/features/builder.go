// Package features joins the three aggregated feature sources into the fixed
// vector consumed by the labeler.
package features

import (
	"fmt"
	"sort"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// Build joins one driver's risk profile, teammate delta and race features
// into a FeatureVector. All three inputs must describe the same driver.
func Build(risk model.DriverRiskProfile, delta model.TeammateDelta, race model.RaceFeatureSet) (model.FeatureVector, error) {
	if risk.DriverID != delta.DriverID || risk.DriverID != race.DriverID {
		return model.FeatureVector{}, fmt.Errorf(
			"feature vector join: mismatched drivers %q/%q/%q",
			risk.DriverID, delta.DriverID, race.DriverID)
	}

	return model.FeatureVector{
		DriverID:        risk.DriverID,
		RiskScore:       float64(risk.TotalRisk),
		PointsDelta:     delta.PointsDelta,
		QualifyingDelta: delta.QualifyingDelta,
		PositionDelta:   delta.PositionDelta,
		Consistency:     race.Consistency,
		PositionChange:  race.PositionChange,
		TyreDegradation: race.TyreDegradation,
	}, nil
}

// BuildAll joins the three per-driver maps for every race participant.
//
// A driver absent from the risk map genuinely scored zero (risk derives from
// a full scan of the season's messages), so a zero profile is substituted. A
// driver missing a teammate delta or race features has genuinely missing
// data; such drivers are excluded and reported, never zero-filled, since
// zero-filling would bias the learned model toward "no deficit".
func BuildAll(
	risks map[string]model.DriverRiskProfile,
	deltas map[string]model.TeammateDelta,
	races map[string]model.RaceFeatureSet,
) ([]model.FeatureVector, []*common.IncompleteFeatureVectorError) {
	driverIDs := make([]string, 0, len(races))
	for driverID := range races {
		driverIDs = append(driverIDs, driverID)
	}
	sort.Strings(driverIDs)

	var vectors []model.FeatureVector
	var excluded []*common.IncompleteFeatureVectorError

	for _, driverID := range driverIDs {
		race := races[driverID]

		delta, ok := deltas[driverID]
		if !ok {
			excluded = append(excluded, &common.IncompleteFeatureVectorError{
				DriverID: driverID,
				Missing:  []string{"teammate_delta"},
			})
			continue
		}

		risk, ok := risks[driverID]
		if !ok {
			risk = model.DriverRiskProfile{DriverID: driverID}
		}

		vector, err := Build(risk, delta, race)
		if err != nil {
			excluded = append(excluded, &common.IncompleteFeatureVectorError{
				DriverID: driverID,
				Missing:  []string{"join_mismatch"},
			})
			continue
		}
		vectors = append(vectors, vector)
	}

	// Drivers with a teammate delta but no race features (too few completed
	// races) are excluded too, and reported so the coverage summary accounts
	// for every driver seen.
	var deltaOnly []string
	for driverID := range deltas {
		if _, ok := races[driverID]; !ok {
			deltaOnly = append(deltaOnly, driverID)
		}
	}
	sort.Strings(deltaOnly)
	for _, driverID := range deltaOnly {
		excluded = append(excluded, &common.IncompleteFeatureVectorError{
			DriverID: driverID,
			Missing:  []string{"race_features"},
		})
	}

	return vectors, excluded
}
