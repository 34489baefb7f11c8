package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charleshss/f1-ai-ml-project/internal/export"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// RenderReport writes the human-readable classification report: drivers
// grouped by style, most incident-prone first, with seed labels marked.
func RenderReport(w io.Writer, report export.Report) error {
	if _, err := fmt.Fprintln(w, FormatTitle("Driver styles")); err != nil {
		return err
	}
	subtitle := fmt.Sprintf("%d season", report.Season)
	if _, err := fmt.Fprintln(w, SubtitleStyle.Render(subtitle)); err != nil {
		return err
	}

	styles := make([]string, 0, len(report.Results))
	for style := range report.Results {
		styles = append(styles, style)
	}
	sort.Strings(styles)

	for _, style := range styles {
		if _, err := fmt.Fprintln(w, BoldStyle.Render(strings.ToUpper(style)+":")); err != nil {
			return err
		}
		for _, entry := range report.Results[style] {
			marker := PredictIcon
			if entry.IsSeed {
				marker = SeedIcon
			}
			line := fmt.Sprintf("  %s %s: %5.1f%% confidence (Risk: %3.0f, PosΔ: %+.2f)",
				marker, entry.Driver, entry.Confidence*100,
				entry.Features.RiskScore, entry.Features.PositionChange)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	summary := fmt.Sprintf("%d drivers: %d seeded, %d predicted (training accuracy %.2f)",
		report.Drivers, report.SeedCount, report.PredictedCount, report.TrainingAccuracy)
	_, err := fmt.Fprintln(w, SubtleStyle.Render(summary))
	return err
}

// RenderRiskTable writes per-driver risk profiles sorted by descending total
// risk.
func RenderRiskTable(w io.Writer, profiles map[string]model.DriverRiskProfile) error {
	ordered := make([]model.DriverRiskProfile, 0, len(profiles))
	for _, p := range profiles {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].TotalRisk != ordered[j].TotalRisk {
			return ordered[i].TotalRisk > ordered[j].TotalRisk
		}
		return ordered[i].DriverID < ordered[j].DriverID
	})

	header := fmt.Sprintf("%-8s %10s %10s", "DRIVER", "RISK", "INCIDENTS")
	if _, err := fmt.Fprintln(w, TableHeaderStyle.Render(header)); err != nil {
		return err
	}
	for _, p := range ordered {
		row := fmt.Sprintf("%-8s %10d %10d", p.DriverID, p.TotalRisk, p.IncidentCount())
		if _, err := fmt.Fprintln(w, TableCellStyle.Render(row)); err != nil {
			return err
		}
	}
	return nil
}

// RenderTeammateTable writes per-driver teammate deltas ordered by driver id.
// Partial-season comparisons are flagged with their coverage.
func RenderTeammateTable(w io.Writer, deltas map[string]model.TeammateDelta) error {
	drivers := make([]string, 0, len(deltas))
	for driverID := range deltas {
		drivers = append(drivers, driverID)
	}
	sort.Strings(drivers)

	header := fmt.Sprintf("%-8s %-8s %10s %10s %10s %10s",
		"DRIVER", "VS", "POINTS", "QUALI(s)", "POSITION", "COVERAGE")
	if _, err := fmt.Fprintln(w, TableHeaderStyle.Render(header)); err != nil {
		return err
	}
	for _, driverID := range drivers {
		d := deltas[driverID]
		row := fmt.Sprintf("%-8s %-8s %+10.2f %+10.3f %+10.2f %9.0f%%",
			d.DriverID, d.TeammateID, d.PointsDelta, d.QualifyingDelta,
			d.PositionDelta, d.Coverage*100)
		rendered := TableCellStyle.Render(row)
		if d.Coverage < 1.0 {
			rendered += " " + WarningStyle.Render("partial")
		}
		if _, err := fmt.Fprintln(w, rendered); err != nil {
			return err
		}
	}
	return nil
}
