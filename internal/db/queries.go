package db

import (
	"database/sql"
	"fmt"
)

// VerificationRun represents a row in the verification_runs table:
// one category result from one verification run.
type VerificationRun struct {
	ID        int
	RunID     string
	LogPath   string
	Category  string
	Passed    bool
	Errors    int
	Warnings  int
	Summary   string
	Timestamp string
}

// LogVerificationRun inserts one category result for a run. Summary is the
// category's metric map serialized as JSON.
func (d *DB) LogVerificationRun(runID, logPath, category string, passed bool, errors, warnings int, summary string) error {
	_, err := d.conn.Exec(
		`INSERT INTO verification_runs (run_id, log_path, category, passed, errors, warnings, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, logPath, category, passed, errors, warnings, summary,
	)
	if err != nil {
		return fmt.Errorf("log verification run: %w", err)
	}
	return nil
}

// GetRunHistory returns recorded runs, newest first. An empty logPath
// returns runs for every log file; limit <= 0 means no limit.
func (d *DB) GetRunHistory(logPath string, limit int) ([]VerificationRun, error) {
	query := `SELECT id, run_id, log_path, category, passed, errors, warnings, summary, timestamp
	          FROM verification_runs`
	var args []any
	if logPath != "" {
		query += ` WHERE log_path = ?`
		args = append(args, logPath)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("get run history: %w", err)
	}
	defer rows.Close()

	var runs []VerificationRun
	for rows.Next() {
		var r VerificationRun
		var summary sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.LogPath, &r.Category, &r.Passed, &r.Errors, &r.Warnings, &summary, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan verification run: %w", err)
		}
		if summary.Valid {
			r.Summary = summary.String
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetLatestRun returns the category rows of the most recent run for a log
// path, or nil if none was recorded.
func (d *DB) GetLatestRun(logPath string) ([]VerificationRun, error) {
	var runID string
	err := d.conn.QueryRow(
		`SELECT run_id FROM verification_runs WHERE log_path = ? ORDER BY id DESC LIMIT 1`,
		logPath,
	).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest run: %w", err)
	}

	rows, err := d.conn.Query(
		`SELECT id, run_id, log_path, category, passed, errors, warnings, summary, timestamp
		 FROM verification_runs WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get latest run: %w", err)
	}
	defer rows.Close()

	var runs []VerificationRun
	for rows.Next() {
		var r VerificationRun
		var summary sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.LogPath, &r.Category, &r.Passed, &r.Errors, &r.Warnings, &summary, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan verification run: %w", err)
		}
		if summary.Valid {
			r.Summary = summary.String
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
