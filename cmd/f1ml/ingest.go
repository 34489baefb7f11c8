package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charleshss/f1-ai-ml-project/internal/cli"
	"github.com/charleshss/f1-ai-ml-project/internal/config"
	"github.com/charleshss/f1-ai-ml-project/internal/ingest"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <season.json>",
		Short: "Load a season data file into local storage",
		Long: `Read a season export (race control messages, lap records and session
results) and store it locally. Ingest is idempotent: re-ingesting a season
replaces the stored copy.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := ingest.LoadSeasonFile(config.ExpandPath(args[0]))
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveSeason(ctx, data); err != nil {
		return fmt.Errorf("failed to store season %d: %w", data.Season, err)
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf(
		"Ingested season %d: %d messages, %d laps, %d results",
		data.Season, len(data.Messages), len(data.Laps), len(data.Results))))
	return nil
}
