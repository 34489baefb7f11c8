package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// SaveSeason replaces all stored inputs for the season with the given data.
// Ingest is idempotent: re-running it over the same season overwrites rather
// than duplicates.
func (s *SQLiteStorage) SaveSeason(ctx context.Context, data model.SeasonData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSeason(data.Season); err != nil {
		return err
	}
	for _, lap := range data.Laps {
		if err := lap.Validate(); err != nil {
			return err
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"race_control_messages", "laps", "session_results"} {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf("DELETE FROM %s WHERE season = ?", table), data.Season); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		msgStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO race_control_messages (season, session_id, driver_number, raw_text)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare message insert: %w", err)
		}
		defer func() { _ = msgStmt.Close() }()
		for _, msg := range data.Messages {
			var number sql.NullInt64
			if msg.DriverNumber != nil {
				number = sql.NullInt64{Int64: int64(*msg.DriverNumber), Valid: true}
			}
			if _, err := msgStmt.ExecContext(ctx, data.Season, msg.SessionID, number, msg.RawText); err != nil {
				return fmt.Errorf("failed to insert message: %w", err)
			}
		}

		lapStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO laps (season, session_id, driver_id, lap_number, lap_time, tyre_compound, is_outlier)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare lap insert: %w", err)
		}
		defer func() { _ = lapStmt.Close() }()
		for _, lap := range data.Laps {
			if _, err := lapStmt.ExecContext(ctx, data.Season, lap.SessionID, lap.DriverID,
				lap.LapNumber, lap.LapTime, lap.TyreCompound, lap.IsOutlier); err != nil {
				return fmt.Errorf("failed to insert lap: %w", err)
			}
		}

		resultStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO session_results (season, session_id, driver_id, racing_number,
				points, grid_position, finish_position, qualifying_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare result insert: %w", err)
		}
		defer func() { _ = resultStmt.Close() }()
		for _, res := range data.Results {
			var quali sql.NullFloat64
			if res.HasQualifyingTime() {
				quali = sql.NullFloat64{Float64: res.QualifyingTime, Valid: true}
			}
			if _, err := resultStmt.ExecContext(ctx, data.Season, res.SessionID, res.DriverID,
				res.RacingNumber, res.Points, res.GridPosition, res.FinishPosition, quali); err != nil {
				return fmt.Errorf("failed to insert session result: %w", err)
			}
		}

		return nil
	})
}

// LoadSeason reads back the stored inputs for one season.
func (s *SQLiteStorage) LoadSeason(ctx context.Context, season int) (model.SeasonData, error) {
	data := model.SeasonData{Season: season}
	if err := validateContext(ctx); err != nil {
		return data, err
	}
	if err := validateSeason(season); err != nil {
		return data, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, driver_number, raw_text
		FROM race_control_messages WHERE season = ? ORDER BY id
	`, season)
	if err != nil {
		return data, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var msg model.EventMessage
		var number sql.NullInt64
		if err := rows.Scan(&msg.SessionID, &number, &msg.RawText); err != nil {
			return data, fmt.Errorf("failed to scan message: %w", err)
		}
		if number.Valid {
			n := int(number.Int64)
			msg.DriverNumber = &n
		}
		data.Messages = append(data.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("failed to read messages: %w", err)
	}

	lapRows, err := s.db.QueryContext(ctx, `
		SELECT session_id, driver_id, lap_number, lap_time, tyre_compound, is_outlier
		FROM laps WHERE season = ? ORDER BY session_id, driver_id, lap_number
	`, season)
	if err != nil {
		return data, fmt.Errorf("failed to query laps: %w", err)
	}
	defer func() { _ = lapRows.Close() }()
	for lapRows.Next() {
		var lap model.LapRecord
		var compound sql.NullString
		if err := lapRows.Scan(&lap.SessionID, &lap.DriverID, &lap.LapNumber,
			&lap.LapTime, &compound, &lap.IsOutlier); err != nil {
			return data, fmt.Errorf("failed to scan lap: %w", err)
		}
		lap.TyreCompound = compound.String
		data.Laps = append(data.Laps, lap)
	}
	if err := lapRows.Err(); err != nil {
		return data, fmt.Errorf("failed to read laps: %w", err)
	}

	resultRows, err := s.db.QueryContext(ctx, `
		SELECT session_id, driver_id, racing_number, points, grid_position, finish_position, qualifying_time
		FROM session_results WHERE season = ? ORDER BY session_id, driver_id
	`, season)
	if err != nil {
		return data, fmt.Errorf("failed to query session results: %w", err)
	}
	defer func() { _ = resultRows.Close() }()
	for resultRows.Next() {
		var res model.SessionResult
		var quali sql.NullFloat64
		if err := resultRows.Scan(&res.SessionID, &res.DriverID, &res.RacingNumber,
			&res.Points, &res.GridPosition, &res.FinishPosition, &quali); err != nil {
			return data, fmt.Errorf("failed to scan session result: %w", err)
		}
		if quali.Valid {
			res.QualifyingTime = quali.Float64
		}
		data.Results = append(data.Results, res)
	}
	if err := resultRows.Err(); err != nil {
		return data, fmt.Errorf("failed to read session results: %w", err)
	}

	return data, nil
}

// GetSeasons lists the seasons with stored inputs, oldest first.
func (s *SQLiteStorage) GetSeasons(ctx context.Context) ([]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT season FROM session_results ORDER BY season
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var seasons []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}
