// Package ingest loads season data files into the domain model.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// LoadSeasonFile reads a season JSON export from disk.
func LoadSeasonFile(path string) (model.SeasonData, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from user flags
	if err != nil {
		return model.SeasonData{}, fmt.Errorf("failed to open season file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := LoadSeason(f)
	if err != nil {
		return model.SeasonData{}, fmt.Errorf("season file %s: %w", path, err)
	}
	return data, nil
}

// LoadSeason decodes and validates season data from a reader.
func LoadSeason(r io.Reader) (model.SeasonData, error) {
	var data model.SeasonData

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&data); err != nil {
		return data, fmt.Errorf("failed to decode season data: %w", err)
	}

	if err := Validate(data); err != nil {
		return data, err
	}

	common.LogInfo("loaded season data", common.Fields{
		"season":   data.Season,
		"messages": len(data.Messages),
		"laps":     len(data.Laps),
		"results":  len(data.Results),
	})
	return data, nil
}

// Validate checks the season data is structurally usable. Individual malformed
// messages are tolerated downstream; structural problems in laps and results
// are fatal because every later stage depends on them.
func Validate(data model.SeasonData) error {
	if data.Season < 1950 || data.Season > 9999 {
		return fmt.Errorf("season data: invalid season %d", data.Season)
	}
	if len(data.Results) == 0 {
		return fmt.Errorf("season %d: no session results", data.Season)
	}

	for i, lap := range data.Laps {
		if err := lap.Validate(); err != nil {
			return fmt.Errorf("season %d lap %d: %w", data.Season, i, err)
		}
	}

	seen := make(map[string]struct{}, len(data.Results))
	for i, res := range data.Results {
		if res.SessionID == "" || res.DriverID == "" {
			return fmt.Errorf("season %d result %d: missing session or driver id", data.Season, i)
		}
		key := res.SessionID + "\x00" + res.DriverID
		if _, dup := seen[key]; dup {
			return fmt.Errorf("season %d: %w: result for %s in %s", data.Season, common.ErrDuplicateEntry, res.DriverID, res.SessionID)
		}
		seen[key] = struct{}{}
	}

	// A racing number worn by two drivers in one session would poison
	// attribution for every message in that session.
	numbers := make(map[string]string)
	for _, res := range data.Results {
		if res.RacingNumber == 0 {
			continue
		}
		key := fmt.Sprintf("%s/%d", res.SessionID, res.RacingNumber)
		if prior, ok := numbers[key]; ok && prior != res.DriverID {
			return fmt.Errorf("season %d session %s: racing number %d assigned to both %s and %s",
				data.Season, res.SessionID, res.RacingNumber, prior, res.DriverID)
		}
		numbers[key] = res.DriverID
	}

	return nil
}
