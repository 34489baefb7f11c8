package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

var teammateHeader = []string{
	"driver_id",
	"teammate_id",
	"points_delta",
	"qualifying_delta_seconds",
	"position_delta",
	"common_race_sessions",
	"common_qualifying_sessions",
	"coverage",
}

// WriteTeammateCSV writes per-driver teammate deltas as CSV, one row per
// driver, ordered by driver id.
func WriteTeammateCSV(w io.Writer, deltas map[string]model.TeammateDelta) error {
	drivers := make([]string, 0, len(deltas))
	for driverID := range deltas {
		drivers = append(drivers, driverID)
	}
	sort.Strings(drivers)

	writer := csv.NewWriter(w)
	if err := writer.Write(teammateHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, driverID := range drivers {
		d := deltas[driverID]
		row := []string{
			d.DriverID,
			d.TeammateID,
			strconv.FormatFloat(d.PointsDelta, 'f', 4, 64),
			strconv.FormatFloat(d.QualifyingDelta, 'f', 4, 64),
			strconv.FormatFloat(d.PositionDelta, 'f', 4, 64),
			strconv.Itoa(d.CommonRaceSessions),
			strconv.Itoa(d.CommonQualifyingSessions),
			strconv.FormatFloat(d.Coverage, 'f', 4, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", driverID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteTeammateCSVFile writes the teammate delta table to path.
func WriteTeammateCSVFile(path string, deltas map[string]model.TeammateDelta) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from user flags
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteTeammateCSV(f, deltas); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
