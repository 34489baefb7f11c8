package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charleshss/f1-ai-ml-project/internal/cli"
	"github.com/charleshss/f1-ai-ml-project/internal/config"
	"github.com/charleshss/f1-ai-ml-project/internal/incident"
)

func riskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Show per-driver risk profiles for a classified season",
		RunE:  runRisk,
	}

	cmd.Flags().Int("season", 0, "Season to show (required)")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func runRisk(cmd *cobra.Command, _ []string) error {
	season, _ := cmd.Flags().GetInt("season")

	seasonCfg, err := config.LoadSeasonConfig()
	if err != nil {
		return fmt.Errorf("invalid season configuration: %w", err)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	incidents, err := store.GetIncidents(ctx, season)
	if err != nil {
		return err
	}
	if len(incidents) == 0 {
		return fmt.Errorf("no incidents stored for season %d; run 'f1ml classify' first", season)
	}

	profiles := incident.AggregateRisk(incidents, seasonCfg.Weights)

	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("Risk profiles — %d season", season)))
	return cli.RenderRiskTable(os.Stdout, profiles)
}
