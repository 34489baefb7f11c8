package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charleshss/f1-ai-ml-project/internal/cli"
	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/config"
	"github.com/charleshss/f1-ai-ml-project/internal/export"
	"github.com/charleshss/f1-ai-ml-project/internal/teammate"
)

func teammatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teammates",
		Short: "Show teammate-relative performance deltas for a season",
		Long: `Compute points, qualifying and finishing position deltas between the
configured teammate pairs, over the sessions both drivers contested. Partial
overlaps (mid-season replacements) are flagged with their coverage.`,
		RunE: runTeammates,
	}

	cmd.Flags().Int("season", 0, "Season to compare (required)")
	cmd.Flags().String("csv", "", "Write the delta table CSV to this path")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func runTeammates(cmd *cobra.Command, _ []string) error {
	season, _ := cmd.Flags().GetInt("season")
	csvPath, _ := cmd.Flags().GetString("csv")

	seasonCfg, err := config.LoadSeasonConfig()
	if err != nil {
		return fmt.Errorf("invalid season configuration: %w", err)
	}
	if len(seasonCfg.Pairs) == 0 {
		return fmt.Errorf("%w: no teammate pairs; add a 'teammates' section to your config", common.ErrMissingConfig)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	data, err := loadStoredSeason(ctx, store, season)
	if err != nil {
		return err
	}

	deltas, err := teammate.Compute(data.Results, seasonCfg.Pairs)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("Teammate deltas — %d season", season)))
	if err := cli.RenderTeammateTable(os.Stdout, deltas); err != nil {
		return err
	}

	if csvPath != "" {
		if err := export.WriteTeammateCSVFile(config.ExpandPath(csvPath), deltas); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("Teammate deltas written to "+csvPath))
	}
	return nil
}
