// Package export renders pipeline results as JSON reports and CSV tables.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// DriverEntry is one driver's line in the classification report.
type DriverEntry struct {
	Driver     string              `json:"driver"`
	Confidence float64             `json:"confidence"`
	IsSeed     bool                `json:"is_seed"`
	Features   model.FeatureVector `json:"features"`
}

// Report is the season classification report, drivers grouped by assigned
// style.
type Report struct {
	Season            int                      `json:"season"`
	Categories        int                      `json:"categories"`
	Drivers           int                      `json:"drivers"`
	SeedCount         int                      `json:"seed_count"`
	PredictedCount    int                      `json:"predicted_count"`
	TrainingAccuracy  float64                  `json:"training_accuracy"`
	FeatureImportance map[string]float64       `json:"feature_importance"`
	Results           map[string][]DriverEntry `json:"results"`
}

// BuildReport assembles the report. Within each style, drivers are ordered by
// descending risk score so the most incident-prone drivers read first.
func BuildReport(season int, results []model.ClassificationResult,
	importances map[string]float64, trainingAccuracy float64) Report {
	report := Report{
		Season:            season,
		Categories:        len(model.AllStyleLabels()),
		Drivers:           len(results),
		TrainingAccuracy:  trainingAccuracy,
		FeatureImportance: importances,
		Results:           make(map[string][]DriverEntry),
	}

	for _, r := range results {
		if r.IsSeed() {
			report.SeedCount++
		} else {
			report.PredictedCount++
		}
		report.Results[string(r.Label)] = append(report.Results[string(r.Label)], DriverEntry{
			Driver:     r.DriverID,
			Confidence: r.Confidence,
			IsSeed:     r.IsSeed(),
			Features:   r.Features,
		})
	}

	for _, entries := range report.Results {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Features.RiskScore != entries[j].Features.RiskScore {
				return entries[i].Features.RiskScore > entries[j].Features.RiskScore
			}
			return entries[i].Driver < entries[j].Driver
		})
	}

	return report
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteJSONFile writes the report to path, creating or truncating it.
func WriteJSONFile(path string, report Report) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from user flags
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteJSON(f, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
