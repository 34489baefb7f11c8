package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

func TestWriteTeammateCSV(t *testing.T) {
	deltas := map[string]model.TeammateDelta{
		"VER": {
			DriverID: "VER", TeammateID: "TSU",
			PointsDelta: 7.5, QualifyingDelta: -0.312, PositionDelta: 2.0,
			CommonRaceSessions: 20, CommonQualifyingSessions: 19, Coverage: 1.0,
		},
		"TSU": {
			DriverID: "TSU", TeammateID: "VER",
			PointsDelta: -7.5, QualifyingDelta: 0.312, PositionDelta: -2.0,
			CommonRaceSessions: 20, CommonQualifyingSessions: 19, Coverage: 1.0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTeammateCSV(&buf, deltas))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, teammateHeader, records[0])
	// Rows ordered by driver id.
	assert.Equal(t, "TSU", records[1][0])
	assert.Equal(t, "VER", records[2][0])
	assert.Equal(t, "-0.3120", records[2][3])
	assert.Equal(t, "20", records[2][5])
	assert.Equal(t, "1.0000", records[2][7])
}

func TestWriteTeammateCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTeammateCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
