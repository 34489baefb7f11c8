package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/config"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
	"github.com/charleshss/f1-ai-ml-project/internal/storage"
)

// initStorage initializes season storage with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/f1ml/f1ml.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadStoredSeason fetches a previously ingested season, with a friendly
// error when it isn't there.
func loadStoredSeason(ctx context.Context, store *storage.SQLiteStorage, season int) (model.SeasonData, error) {
	data, err := store.LoadSeason(ctx, season)
	if err != nil {
		return data, err
	}
	if len(data.Results) == 0 {
		return data, common.NewUserError(
			fmt.Sprintf("no data stored for season %d; run 'f1ml ingest' first", season),
			common.ErrNotFound)
	}
	return data, nil
}
