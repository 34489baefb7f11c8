package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func TestBuild(t *testing.T) {
	vector, err := Build(
		model.DriverRiskProfile{DriverID: "VER", TotalRisk: 18},
		model.TeammateDelta{DriverID: "VER", PointsDelta: 245, QualifyingDelta: -0.4, PositionDelta: 6.2},
		model.RaceFeatureSet{DriverID: "VER", Consistency: 1.1, PositionChange: 0.8, TyreDegradation: 0.6},
	)
	require.NoError(t, err)

	assert.Equal(t, "VER", vector.DriverID)
	assert.InDelta(t, 18.0, vector.RiskScore, 1e-9)
	assert.InDelta(t, 245.0, vector.PointsDelta, 1e-9)
	assert.InDelta(t, -0.4, vector.QualifyingDelta, 1e-9)
	assert.InDelta(t, 6.2, vector.PositionDelta, 1e-9)
	assert.InDelta(t, 1.1, vector.Consistency, 1e-9)
	assert.InDelta(t, 0.8, vector.PositionChange, 1e-9)
	assert.InDelta(t, 0.6, vector.TyreDegradation, 1e-9)
	assert.Len(t, vector.Values(), model.NumFeatures)
}

func TestBuild_MismatchedDrivers(t *testing.T) {
	_, err := Build(
		model.DriverRiskProfile{DriverID: "VER"},
		model.TeammateDelta{DriverID: "TSU"},
		model.RaceFeatureSet{DriverID: "VER"},
	)
	assert.Error(t, err)
}

func TestBuildAll(t *testing.T) {
	risks := map[string]model.DriverRiskProfile{
		"VER": {DriverID: "VER", TotalRisk: 18},
	}
	deltas := map[string]model.TeammateDelta{
		"VER": {DriverID: "VER", PointsDelta: 245},
		"TSU": {DriverID: "TSU", PointsDelta: -245},
	}
	races := map[string]model.RaceFeatureSet{
		"VER": {DriverID: "VER", Consistency: 1.1},
		"TSU": {DriverID: "TSU", Consistency: 1.9},
		"DOO": {DriverID: "DOO", Consistency: 2.2}, // no teammate delta
	}

	vectors, excluded := BuildAll(risks, deltas, races)

	require.Len(t, vectors, 2)
	assert.Equal(t, "TSU", vectors[0].DriverID)
	assert.Equal(t, "VER", vectors[1].DriverID)

	// TSU had no incidents: zero risk is a known value, not missing data.
	assert.Zero(t, vectors[0].RiskScore)

	require.Len(t, excluded, 1)
	assert.Equal(t, "DOO", excluded[0].DriverID)
	assert.Contains(t, excluded[0].Missing, "teammate_delta")
	assert.Contains(t, excluded[0].Error(), "DOO")
}

func TestBuildAll_ReportsMissingRaceFeatures(t *testing.T) {
	deltas := map[string]model.TeammateDelta{
		"VER": {DriverID: "VER", PointsDelta: 245},
		"COL": {DriverID: "COL", PointsDelta: -12}, // retired every race
	}
	races := map[string]model.RaceFeatureSet{
		"VER": {DriverID: "VER", Consistency: 1.1},
	}

	vectors, excluded := BuildAll(nil, deltas, races)

	require.Len(t, vectors, 1)
	assert.Equal(t, "VER", vectors[0].DriverID)

	require.Len(t, excluded, 1)
	assert.Equal(t, "COL", excluded[0].DriverID)
	assert.Equal(t, []string{"race_features"}, excluded[0].Missing)
}
