package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

const validSeasonJSON = `{
	"season": 2025,
	"messages": [
		{"session_id": "R1", "raw_text": "CAR 1 (VER) CAUSING A COLLISION PENALTY", "driver_number": 1},
		{"session_id": "R1", "raw_text": "SAFETY CAR DEPLOYED"}
	],
	"laps": [
		{"driver_id": "VER", "session_id": "R1", "lap_number": 1, "lap_time": 80.123, "tyre_compound": "SOFT"}
	],
	"results": [
		{"session_id": "R1", "driver_id": "VER", "racing_number": 1, "points": 25, "grid_position": 1, "finish_position": 1, "qualifying_time": 79.5},
		{"session_id": "R1", "driver_id": "TSU", "racing_number": 22, "points": 10, "grid_position": 6, "finish_position": 5}
	]
}`

func TestLoadSeason(t *testing.T) {
	data, err := LoadSeason(strings.NewReader(validSeasonJSON))
	require.NoError(t, err)

	assert.Equal(t, 2025, data.Season)
	require.Len(t, data.Messages, 2)
	require.NotNil(t, data.Messages[0].DriverNumber)
	assert.Equal(t, 1, *data.Messages[0].DriverNumber)
	assert.Nil(t, data.Messages[1].DriverNumber)
	assert.Len(t, data.Laps, 1)
	assert.Len(t, data.Results, 2)

	rosters := data.Rosters()
	assert.Equal(t, "VER", rosters["R1"][1])
	assert.Equal(t, "TSU", rosters["R1"][22])
}

func TestLoadSeason_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "malformed json",
			input:   `{"season": 2025,`,
			wantErr: "decode",
		},
		{
			name:    "unknown field",
			input:   `{"season": 2025, "telemetry": []}`,
			wantErr: "decode",
		},
		{
			name:    "missing season",
			input:   `{"results": [{"session_id": "R1", "driver_id": "VER"}]}`,
			wantErr: "invalid season",
		},
		{
			name:    "no results",
			input:   `{"season": 2025}`,
			wantErr: "no session results",
		},
		{
			name: "negative lap time",
			input: `{"season": 2025,
				"laps": [{"driver_id": "VER", "session_id": "R1", "lap_number": 1, "lap_time": -3}],
				"results": [{"session_id": "R1", "driver_id": "VER", "racing_number": 1}]}`,
			wantErr: "lap time",
		},
		{
			name: "duplicate result",
			input: `{"season": 2025, "results": [
				{"session_id": "R1", "driver_id": "VER", "racing_number": 1},
				{"session_id": "R1", "driver_id": "VER", "racing_number": 1}]}`,
			wantErr: "duplicate entry",
		},
		{
			name: "racing number collision",
			input: `{"season": 2025, "results": [
				{"session_id": "R1", "driver_id": "VER", "racing_number": 1},
				{"session_id": "R1", "driver_id": "TSU", "racing_number": 1}]}`,
			wantErr: "racing number 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeason(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSeasonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.json")
	require.NoError(t, os.WriteFile(path, []byte(validSeasonJSON), 0600))

	data, err := LoadSeasonFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2025, data.Season)

	_, err = LoadSeasonFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate_SameNumberAcrossSessions(t *testing.T) {
	// A number may change hands between sessions (mid-season replacement).
	data := model.SeasonData{
		Season: 2025,
		Results: []model.SessionResult{
			{SessionID: "R1", DriverID: "LAW", RacingNumber: 30},
			{SessionID: "R5", DriverID: "TSU", RacingNumber: 30},
		},
	}
	assert.NoError(t, Validate(data))
}
