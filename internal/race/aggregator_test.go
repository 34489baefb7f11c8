package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func lap(driver, session string, num int, seconds float64, compound string, outlier bool) model.LapRecord {
	return model.LapRecord{
		DriverID:     driver,
		SessionID:    session,
		LapNumber:    num,
		LapTime:      seconds,
		TyreCompound: compound,
		IsOutlier:    outlier,
	}
}

func TestAggregate_Consistency(t *testing.T) {
	laps := []model.LapRecord{
		lap("VER", "R1", 1, 80.0, "SOFT", false),
		lap("VER", "R1", 2, 80.2, "SOFT", false),
		lap("VER", "R1", 3, 80.4, "SOFT", false),
		// Pit-in lap must not poison the spread.
		lap("VER", "R1", 4, 95.0, "SOFT", true),
	}
	results := []model.SessionResult{
		{SessionID: "R1", DriverID: "VER", GridPosition: 3, FinishPosition: 1},
	}

	features, err := Aggregate(laps, results)
	require.NoError(t, err)
	require.Contains(t, features, "VER")

	ver := features["VER"]
	assert.InDelta(t, 0.2, ver.Consistency, 1e-9,
		"stddev over the three clean laps only")
	assert.InDelta(t, 2.0, ver.PositionChange, 1e-9, "gained places is positive")
	assert.Equal(t, 1, ver.RacesCompleted)
}

func TestAggregate_ConsistencyAveragedPerRace(t *testing.T) {
	// A metronomic driver at a fast circuit and a slow one: the 20-second
	// gap between base lap times must not leak into the spread.
	var laps []model.LapRecord
	for i, tm := range []float64{80.0, 80.2, 80.4} {
		laps = append(laps, lap("ALO", "R1", i+1, tm, "SOFT", false))
	}
	for i, tm := range []float64{100.0, 100.2, 100.4} {
		laps = append(laps, lap("ALO", "R2", i+1, tm, "SOFT", false))
	}

	features, err := Aggregate(laps, nil)
	require.NoError(t, err)
	require.Contains(t, features, "ALO")

	alo := features["ALO"]
	assert.Equal(t, 2, alo.RacesCompleted)
	assert.InDelta(t, 0.2, alo.Consistency, 1e-9,
		"same spread at both circuits averages to that spread")
}

func TestAggregate_PositionChangeAveragedAcrossRaces(t *testing.T) {
	laps := []model.LapRecord{
		lap("NOR", "R1", 1, 81.0, "SOFT", false),
		lap("NOR", "R1", 2, 81.1, "SOFT", false),
		lap("NOR", "R1", 3, 81.2, "SOFT", false),
		lap("NOR", "R2", 1, 82.0, "HARD", false),
		lap("NOR", "R2", 2, 82.1, "HARD", false),
		lap("NOR", "R2", 3, 82.2, "HARD", false),
	}
	results := []model.SessionResult{
		{SessionID: "R1", DriverID: "NOR", GridPosition: 5, FinishPosition: 1}, // +4
		{SessionID: "R2", DriverID: "NOR", GridPosition: 2, FinishPosition: 4}, // -2
	}

	features, err := Aggregate(laps, results)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, features["NOR"].PositionChange, 1e-9)
}

func TestAggregate_TyreDegradation(t *testing.T) {
	// Eight-lap stint degrading steadily: first three average 80.1, last
	// three 80.6.
	var laps []model.LapRecord
	times := []float64{80.0, 80.1, 80.2, 80.3, 80.4, 80.5, 80.6, 80.7}
	for i, tm := range times {
		laps = append(laps, lap("HAM", "R1", i+1, tm, "MEDIUM", false))
	}

	features, err := Aggregate(laps, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, features["HAM"].TyreDegradation, 1e-9)
}

func TestAggregate_ShortStintExcluded(t *testing.T) {
	// Five laps on softs (too short), six on mediums.
	var laps []model.LapRecord
	for i := 1; i <= 5; i++ {
		laps = append(laps, lap("LEC", "R1", i, 79.0+float64(i), "SOFT", false))
	}
	mediumTimes := []float64{81.0, 81.0, 81.0, 81.9, 81.9, 81.9}
	for i, tm := range mediumTimes {
		laps = append(laps, lap("LEC", "R1", 6+i, tm, "MEDIUM", false))
	}

	features, err := Aggregate(laps, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, features["LEC"].TyreDegradation, 1e-9,
		"only the six-lap medium stint contributes")
}

func TestAggregate_TooFewLapsOmitsDriver(t *testing.T) {
	laps := []model.LapRecord{
		lap("BOR", "R1", 1, 84.0, "SOFT", false),
		lap("BOR", "R1", 2, 84.1, "SOFT", false),
	}
	features, err := Aggregate(laps, nil)
	require.NoError(t, err)
	assert.NotContains(t, features, "BOR")
}

func TestAggregate_InvalidLapFails(t *testing.T) {
	laps := []model.LapRecord{
		lap("VER", "R1", 1, -5.0, "SOFT", false),
	}
	_, err := Aggregate(laps, nil)
	assert.Error(t, err)
}

func TestSegmentStints(t *testing.T) {
	laps := []model.LapRecord{
		lap("VER", "R1", 1, 80, "SOFT", false),
		lap("VER", "R1", 2, 80, "SOFT", false),
		lap("VER", "R1", 3, 80, "MEDIUM", false), // compound change
		lap("VER", "R1", 4, 80, "MEDIUM", false),
		lap("VER", "R1", 7, 80, "MEDIUM", false), // lap gap breaks the stint
	}
	stints := segmentStints(laps)
	require.Len(t, stints, 3)
	assert.Equal(t, "SOFT", stints[0].compound)
	assert.Len(t, stints[0].laps, 2)
	assert.Equal(t, "MEDIUM", stints[1].compound)
	assert.Len(t, stints[1].laps, 2)
	assert.Len(t, stints[2].laps, 1)
}
