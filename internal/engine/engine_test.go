package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func intPtr(n int) *int { return &n }

func seasonFixture() model.SeasonData {
	drivers := []struct {
		id     string
		number int
		base   float64
	}{
		{"VER", 1, 79.5},
		{"TSU", 22, 80.6},
		{"NOR", 4, 79.8},
		{"PIA", 81, 79.9},
		{"DOO", 7, 81.0}, // no teammate pairing
	}

	data := model.SeasonData{Season: 2025}

	for _, session := range []string{"R1", "R2"} {
		for pos, d := range drivers {
			data.Results = append(data.Results, model.SessionResult{
				SessionID:      session,
				DriverID:       d.id,
				RacingNumber:   d.number,
				Points:         float64(25 - 7*pos),
				GridPosition:   pos + 2,
				FinishPosition: pos + 1,
				QualifyingTime: d.base - 0.5,
			})
			for lapNo := 1; lapNo <= 8; lapNo++ {
				data.Laps = append(data.Laps, model.LapRecord{
					DriverID:     d.id,
					SessionID:    session,
					LapNumber:    lapNo,
					LapTime:      d.base + float64(lapNo)*0.05,
					TyreCompound: "MEDIUM",
				})
			}
		}
	}

	data.Messages = []model.EventMessage{
		{SessionID: "R1", RawText: "CAR 1 (VER) CAUSING A COLLISION PENALTY"},
		{SessionID: "R1", RawText: "10 SECOND TIME PENALTY FOR CAR 22", DriverNumber: intPtr(22)},
		{SessionID: "R1", RawText: "SAFETY CAR DEPLOYED"},
		{SessionID: "R2", RawText: "RECOVERY VEHICLE ON TRACK AT TURN 6"},
		{SessionID: "R2", RawText: "CAR 22 (TSU) IN THE WALL AT TURN 3"},
	}

	return data
}

func testConfig() Config {
	return Config{
		Pairs: []model.TeammatePair{
			{DriverA: "VER", DriverB: "TSU"},
			{DriverA: "NOR", DriverB: "PIA"},
		},
		Seeds: map[string]model.StyleLabel{
			"VER": model.StyleAggressive,
			"TSU": model.StyleStruggling,
			"NOR": model.StyleConsistent,
		},
	}
}

func TestEngine_Run(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	result, err := e.Run(context.Background(), seasonFixture())
	require.NoError(t, err)

	// Incidents: VER collision, TSU penalty, TSU wall. Recovery vehicle had
	// no driver and was skipped.
	assert.Equal(t, 3, result.Coverage.IncidentsFound)
	assert.Equal(t, 5, result.Coverage.MessagesProcessed)
	assert.Equal(t, 1, result.Coverage.MessagesSkipped)
	assert.Zero(t, result.Coverage.MessagesMalformed)

	require.Contains(t, result.RiskProfiles, "VER")
	require.Contains(t, result.RiskProfiles, "TSU")
	assert.Equal(t, 10, result.RiskProfiles["VER"].TotalRisk)
	assert.Equal(t, 16, result.RiskProfiles["TSU"].TotalRisk)

	// DOO has laps but no pairing: excluded and flagged, not zero-filled.
	assert.Contains(t, result.Coverage.ExcludedDrivers, "DOO")
	require.Len(t, result.Vectors, 4)

	// One classification per vectored driver, seeds tagged as such.
	require.Len(t, result.Classifications, 4)
	bySource := map[model.StyleSource]int{}
	for _, c := range result.Classifications {
		bySource[c.Source]++
		if c.DriverID == "PIA" {
			assert.Equal(t, model.SourcePredicted, c.Source)
		}
	}
	assert.Equal(t, 3, bySource[model.SourceSeed])
	assert.Equal(t, 1, bySource[model.SourcePredicted])

	assert.NotEmpty(t, result.RankedFeatures)
	assert.Contains(t, result.Coverage.TeammateCoverage, "VER")
	assert.InDelta(t, 1.0, result.Coverage.TeammateCoverage["VER"], 1e-9)
}

func TestEngine_RunDeterministic(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	first, err := e.Run(context.Background(), seasonFixture())
	require.NoError(t, err)
	second, err := e.Run(context.Background(), seasonFixture())
	require.NoError(t, err)

	assert.Equal(t, first.Classifications, second.Classifications)
	assert.Equal(t, first.Importances, second.Importances)
	assert.Equal(t, first.RiskProfiles, second.RiskProfiles)
}

func TestEngine_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Pairs = append(cfg.Pairs, model.TeammatePair{DriverA: "VER", DriverB: "LAW"})
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Weights = model.SeverityWeights{model.KindPenalty5s: 5}
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestEngine_CanceledContext(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx, seasonFixture())
	assert.ErrorIs(t, err, context.Canceled)
}
