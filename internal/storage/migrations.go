package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: raw season inputs",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS race_control_messages (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					season INTEGER NOT NULL,
					session_id TEXT NOT NULL,
					driver_number INTEGER,
					raw_text TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_messages_season_session ON race_control_messages(season, session_id)`,

				`CREATE TABLE IF NOT EXISTS laps (
					season INTEGER NOT NULL,
					session_id TEXT NOT NULL,
					driver_id TEXT NOT NULL,
					lap_number INTEGER NOT NULL,
					lap_time REAL NOT NULL,
					tyre_compound TEXT,
					is_outlier BOOLEAN DEFAULT 0,
					PRIMARY KEY (season, session_id, driver_id, lap_number)
				)`,

				`CREATE TABLE IF NOT EXISTS session_results (
					season INTEGER NOT NULL,
					session_id TEXT NOT NULL,
					driver_id TEXT NOT NULL,
					racing_number INTEGER NOT NULL,
					points REAL NOT NULL,
					grid_position INTEGER,
					finish_position INTEGER,
					qualifying_time REAL,
					PRIMARY KEY (season, session_id, driver_id)
				)`,
				`CREATE INDEX idx_results_season_driver ON session_results(season, driver_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Derived artifacts: incidents, feature vectors, classifications",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS incidents (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					season INTEGER NOT NULL,
					session_id TEXT NOT NULL,
					driver_id TEXT NOT NULL,
					kind TEXT NOT NULL,
					severity INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_incidents_season_driver ON incidents(season, driver_id)`,

				`CREATE TABLE IF NOT EXISTS feature_vectors (
					season INTEGER NOT NULL,
					driver_id TEXT NOT NULL,
					risk_score REAL NOT NULL,
					points_delta REAL NOT NULL,
					qualifying_delta REAL NOT NULL,
					position_delta REAL NOT NULL,
					consistency REAL NOT NULL,
					position_change REAL NOT NULL,
					tyre_degradation REAL NOT NULL,
					PRIMARY KEY (season, driver_id)
				)`,

				`CREATE TABLE IF NOT EXISTS classifications (
					season INTEGER NOT NULL,
					driver_id TEXT NOT NULL,
					label TEXT NOT NULL,
					confidence REAL NOT NULL,
					source TEXT NOT NULL,
					classified_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (season, driver_id)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Run log for auditing pipeline executions",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					season INTEGER NOT NULL,
					messages_processed INTEGER NOT NULL,
					incidents_found INTEGER NOT NULL,
					seed_count INTEGER NOT NULL,
					predicted_count INTEGER NOT NULL,
					importances TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)
			`)
			return err
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
