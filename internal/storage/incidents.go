package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// SaveIncidents replaces the stored incidents for the season. Classification
// reruns overwrite prior results wholesale so stale incidents never linger.
func (s *SQLiteStorage) SaveIncidents(ctx context.Context, season int, incidents []model.Incident) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSeason(season); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM incidents WHERE season = ?", season); err != nil {
			return fmt.Errorf("failed to clear incidents: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO incidents (season, session_id, driver_id, kind, severity)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare incident insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, inc := range incidents {
			if _, err := stmt.ExecContext(ctx, season, inc.SessionID, inc.DriverID,
				string(inc.Kind), inc.Severity); err != nil {
				return fmt.Errorf("failed to insert incident: %w", err)
			}
		}
		return nil
	})
}

// GetIncidents returns the stored incidents for a season in insertion order.
func (s *SQLiteStorage) GetIncidents(ctx context.Context, season int) ([]model.Incident, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSeason(season); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, driver_id, kind, severity
		FROM incidents WHERE season = ? ORDER BY id
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incidents []model.Incident
	for rows.Next() {
		var inc model.Incident
		var kind string
		if err := rows.Scan(&inc.SessionID, &inc.DriverID, &kind, &inc.Severity); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		inc.Kind = model.IncidentKind(kind)
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

// GetIncidentsByDriver returns one driver's stored incidents for a season.
func (s *SQLiteStorage) GetIncidentsByDriver(ctx context.Context, season int, driverID string) ([]model.Incident, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(driverID, "driverID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, driver_id, kind, severity
		FROM incidents WHERE season = ? AND driver_id = ? ORDER BY id
	`, season, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incidents []model.Incident
	for rows.Next() {
		var inc model.Incident
		var kind string
		if err := rows.Scan(&inc.SessionID, &inc.DriverID, &kind, &inc.Severity); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		inc.Kind = model.IncidentKind(kind)
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}
