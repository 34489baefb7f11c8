package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charleshss/f1-ai-ml-project/internal/cli"
	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/config"
	"github.com/charleshss/f1-ai-ml-project/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Re-export stored classification results",
		Long: `Build the classification report from results stored by a previous
'f1ml classify' run, without re-running the pipeline.`,
		RunE: runExport,
	}

	cmd.Flags().Int("season", 0, "Season to export (required)")
	cmd.Flags().String("output", "driver_classifications.json", "Report JSON output path")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	season, _ := cmd.Flags().GetInt("season")
	outputPath, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	results, err := store.GetClassifications(ctx, season)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no classifications stored for season %d; run 'f1ml classify' first", season)
	}

	var importances map[string]float64
	run, err := store.GetLatestRun(ctx, season)
	switch {
	case errors.Is(err, common.ErrNotFound):
		// Report still renders, just without importances.
	case err != nil:
		return err
	default:
		importances = run.Importances
	}

	report := export.BuildReport(season, results, importances, 0)
	if err := export.WriteJSONFile(config.ExpandPath(outputPath), report); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf(
		"Exported %d drivers to %s", report.Drivers, outputPath)))
	return nil
}
