package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func testResults() []model.ClassificationResult {
	return []model.ClassificationResult{
		model.NewSeedResult(model.FeatureVector{DriverID: "VER", RiskScore: 24}, model.StyleAggressive),
		model.NewPredictedResult(model.FeatureVector{DriverID: "TSU", RiskScore: 31}, model.StyleAggressive, 0.81),
		model.NewSeedResult(model.FeatureVector{DriverID: "NOR", RiskScore: 5}, model.StyleConsistent),
	}
}

func TestBuildReport(t *testing.T) {
	importances := map[string]float64{"points_delta": 0.4, "risk_score": 0.25}
	report := BuildReport(2025, testResults(), importances, 1.0)

	assert.Equal(t, 2025, report.Season)
	assert.Equal(t, 3, report.Categories)
	assert.Equal(t, 3, report.Drivers)
	assert.Equal(t, 2, report.SeedCount)
	assert.Equal(t, 1, report.PredictedCount)
	assert.Equal(t, importances, report.FeatureImportance)

	aggressive := report.Results["Aggressive"]
	require.Len(t, aggressive, 2)
	// Highest risk first within a style.
	assert.Equal(t, "TSU", aggressive[0].Driver)
	assert.False(t, aggressive[0].IsSeed)
	assert.Equal(t, "VER", aggressive[1].Driver)
	assert.True(t, aggressive[1].IsSeed)

	require.Len(t, report.Results["Consistent"], 1)
	assert.Empty(t, report.Results["Struggling"])
}

func TestWriteJSON(t *testing.T) {
	report := BuildReport(2025, testResults(), map[string]float64{"risk_score": 1}, 0.95)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(2025), decoded["season"])
	assert.Equal(t, float64(0.95), decoded["training_accuracy"])

	results, ok := decoded["results"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, results, "Aggressive")
	assert.Contains(t, results, "Consistent")
}
