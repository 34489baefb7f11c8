package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charleshss/f1-ai-ml-project/internal/cli"
	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/config"
	"github.com/charleshss/f1-ai-ml-project/internal/engine"
	"github.com/charleshss/f1-ai-ml-project/internal/export"
	"github.com/charleshss/f1-ai-ml-project/internal/storage"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Run the full pipeline and label every driver's style",
		Long: `Classify a stored season end to end: score incidents from race control
messages, compute teammate deltas and race metrics, assemble feature vectors
and label each driver's driving style from the configured seed labels.

Results are stored and can be re-exported later with 'f1ml export'.`,
		RunE: runClassify,
	}

	cmd.Flags().Int("season", 0, "Season to classify (required)")
	cmd.Flags().String("output", "", "Write the classification report JSON to this path")
	cmd.Flags().String("csv", "", "Write teammate deltas CSV to this path")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	season, _ := cmd.Flags().GetInt("season")
	outputPath, _ := cmd.Flags().GetString("output")
	csvPath, _ := cmd.Flags().GetString("csv")

	seasonCfg, err := config.LoadSeasonConfig()
	if err != nil {
		return fmt.Errorf("invalid season configuration: %w", err)
	}
	if len(seasonCfg.Seeds) == 0 {
		return fmt.Errorf("%w: no seed labels; add a 'seeds' section to your config", common.ErrMissingConfig)
	}

	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context())

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	data, err := loadStoredSeason(ctx, store, season)
	if err != nil {
		return err
	}

	bar := cli.NewMessageBar(len(data.Messages), os.Stdout)
	eng, err := engine.New(engine.Config{
		Weights: seasonCfg.Weights,
		Pairs:   seasonCfg.Pairs,
		Seeds:   seasonCfg.Seeds,
		Forest:  seasonCfg.Forest,
		Progress: func(_, _ int) {
			_ = bar.Add(1)
		},
	})
	if err != nil {
		return err
	}

	result, err := eng.Run(ctx, data)
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return err
	}

	if err := store.SaveIncidents(ctx, season, result.Incidents); err != nil {
		return fmt.Errorf("failed to store incidents: %w", err)
	}
	if err := store.SaveClassifications(ctx, season, result.Classifications); err != nil {
		return fmt.Errorf("failed to store classifications: %w", err)
	}
	if err := store.SaveRun(ctx, storage.RunRecord{
		Season:            season,
		MessagesProcessed: result.Coverage.MessagesProcessed,
		IncidentsFound:    result.Coverage.IncidentsFound,
		SeedCount:         countSeeds(result),
		PredictedCount:    len(result.Classifications) - countSeeds(result),
		Importances:       result.Importances,
	}); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	report := export.BuildReport(season, result.Classifications, result.Importances, result.TrainingAccuracy)
	if err := cli.RenderReport(os.Stdout, report); err != nil {
		return err
	}
	for driver, missing := range result.Coverage.ExcludedDrivers {
		fmt.Fprintln(os.Stdout, cli.FormatWarning(fmt.Sprintf(
			"%s excluded from labeling (missing: %v)", driver, missing)))
	}

	if outputPath != "" {
		if err := export.WriteJSONFile(config.ExpandPath(outputPath), report); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("Report written to "+outputPath))
	}
	if csvPath != "" {
		if err := export.WriteTeammateCSVFile(config.ExpandPath(csvPath), result.Deltas); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("Teammate deltas written to "+csvPath))
	}

	return nil
}

func countSeeds(result *engine.Result) int {
	n := 0
	for _, c := range result.Classifications {
		if c.IsSeed() {
			n++
		}
	}
	return n
}
