package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/gpugrade/schema"
)

// GetStatus returns status information about the history store.
func (s *Store) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	runs := quoteTableName(RunsTable, s.backend)
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := s.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}
		last, err := s.scanTime(s.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = last
		oldest, err := s.scanTime(s.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest

		row = s.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(rows_scored), 0) FROM %s", runs))
		if err := row.Scan(&status.TotalRowsScored); err != nil {
			return status, fmt.Errorf("failed to get total rows scored: %w", err)
		}
	}

	for _, table := range []string{RunsTable, ScoredRowsTable} {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves every recorded run ordered by ID.
func (s *Store) GetAllRuns() ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, rows_scored, rows_failed, config_params
		FROM %s ORDER BY run_id`, quoteTableName(RunsTable, s.backend))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var rec schema.RunRecord
		if s.backend == schema.SQLiteBackend {
			var start string
			var end sql.NullString
			if err := rows.Scan(&rec.RunID, &start, &end, &rec.RunDurationMs, &rec.RowsScored, &rec.RowsFailed, &rec.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			if rec.StartTime, err = time.Parse(time.RFC3339Nano, start); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if end.Valid {
				t, err := time.Parse(time.RFC3339Nano, end.String)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				rec.EndTime = &t
			}
		} else {
			var end sql.NullTime
			if err := rows.Scan(&rec.RunID, &rec.StartTime, &end, &rec.RunDurationMs, &rec.RowsScored, &rec.RowsFailed, &rec.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			if end.Valid {
				rec.EndTime = &end.Time
			}
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllScoredRows retrieves every recorded scored row ordered by run, then score.
func (s *Store) GetAllScoredRows() ([]schema.ScoredRowRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, row_id, scored_at, score, grade, normalization_mode
		FROM %s ORDER BY run_id, score DESC, row_id`, quoteTableName(ScoredRowsTable, s.backend))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scored rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScoredRowRecord
	for rows.Next() {
		var rec schema.ScoredRowRecord
		if s.backend == schema.SQLiteBackend {
			var scoredAt string
			if err := rows.Scan(&rec.RunID, &rec.RowID, &scoredAt, &rec.Score, &rec.Grade, &rec.NormalizationMode); err != nil {
				return nil, fmt.Errorf("failed to scan scored row: %w", err)
			}
			if rec.ScoredAt, err = time.Parse(time.RFC3339Nano, scoredAt); err != nil {
				return nil, fmt.Errorf("failed to parse scored_at: %w", err)
			}
		} else if err := rows.Scan(&rec.RunID, &rec.RowID, &rec.ScoredAt, &rec.Score, &rec.Grade, &rec.NormalizationMode); err != nil {
			return nil, fmt.Errorf("failed to scan scored row: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scored rows: %w", err)
	}
	return results, nil
}
