package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// SaveClassifications replaces the stored feature vectors and style
// classifications for a season.
func (s *SQLiteStorage) SaveClassifications(ctx context.Context, season int, results []model.ClassificationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSeason(season); err != nil {
		return err
	}
	for _, r := range results {
		if r.DriverID == "" {
			return fmt.Errorf("classification result: missing driver id")
		}
		if r.Source != model.SourceSeed && r.Source != model.SourcePredicted {
			return fmt.Errorf("classification result %s: unknown source %q", r.DriverID, r.Source)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"classifications", "feature_vectors"} {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf("DELETE FROM %s WHERE season = ?", table), season); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		vecStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO feature_vectors (season, driver_id, risk_score, points_delta,
				qualifying_delta, position_delta, consistency, position_change, tyre_degradation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare vector insert: %w", err)
		}
		defer func() { _ = vecStmt.Close() }()

		clsStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO classifications (season, driver_id, label, confidence, source)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare classification insert: %w", err)
		}
		defer func() { _ = clsStmt.Close() }()

		for _, r := range results {
			v := r.Features
			if _, err := vecStmt.ExecContext(ctx, season, r.DriverID, v.RiskScore,
				v.PointsDelta, v.QualifyingDelta, v.PositionDelta, v.Consistency,
				v.PositionChange, v.TyreDegradation); err != nil {
				return fmt.Errorf("failed to insert feature vector: %w", err)
			}
			if _, err := clsStmt.ExecContext(ctx, season, r.DriverID, string(r.Label),
				r.Confidence, string(r.Source)); err != nil {
				return fmt.Errorf("failed to insert classification: %w", err)
			}
		}
		return nil
	})
}

// GetClassifications returns the stored classifications for a season with
// their feature vectors re-joined, ordered by driver.
func (s *SQLiteStorage) GetClassifications(ctx context.Context, season int) ([]model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSeason(season); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.driver_id, c.label, c.confidence, c.source,
			v.risk_score, v.points_delta, v.qualifying_delta, v.position_delta,
			v.consistency, v.position_change, v.tyre_degradation
		FROM classifications c
		JOIN feature_vectors v ON v.season = c.season AND v.driver_id = c.driver_id
		WHERE c.season = ?
		ORDER BY c.driver_id
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ClassificationResult
	for rows.Next() {
		var r model.ClassificationResult
		var label, source string
		if err := rows.Scan(&r.DriverID, &label, &r.Confidence, &source,
			&r.Features.RiskScore, &r.Features.PointsDelta, &r.Features.QualifyingDelta,
			&r.Features.PositionDelta, &r.Features.Consistency, &r.Features.PositionChange,
			&r.Features.TyreDegradation); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		parsed, err := model.ParseStyleLabel(label)
		if err != nil {
			return nil, fmt.Errorf("stored classification for %s: %w", r.DriverID, err)
		}
		r.Label = parsed
		r.Source = model.StyleSource(source)
		r.Features.DriverID = r.DriverID
		results = append(results, r)
	}
	return results, rows.Err()
}

// RunRecord is one logged pipeline execution.
type RunRecord struct {
	Season            int
	MessagesProcessed int
	IncidentsFound    int
	SeedCount         int
	PredictedCount    int
	Importances       map[string]float64
}

// SaveRun appends a run record to the audit log.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run RunRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSeason(run.Season); err != nil {
		return err
	}

	importances, err := json.Marshal(run.Importances)
	if err != nil {
		return fmt.Errorf("failed to encode importances: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (season, messages_processed, incidents_found, seed_count, predicted_count, importances)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.Season, run.MessagesProcessed, run.IncidentsFound, run.SeedCount, run.PredictedCount, string(importances))
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}
	return nil
}

// GetLatestRun returns the most recent run record for a season.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context, season int) (*RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSeason(season); err != nil {
		return nil, err
	}

	var run RunRecord
	var importances sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT season, messages_processed, incidents_found, seed_count, predicted_count, importances
		FROM runs WHERE season = ? ORDER BY id DESC LIMIT 1
	`, season).Scan(&run.Season, &run.MessagesProcessed, &run.IncidentsFound,
		&run.SeedCount, &run.PredictedCount, &importances)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run record for season %d: %w", season, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run record: %w", err)
	}

	if importances.Valid && importances.String != "" {
		if err := json.Unmarshal([]byte(importances.String), &run.Importances); err != nil {
			return nil, fmt.Errorf("failed to decode importances: %w", err)
		}
	}
	return &run, nil
}
