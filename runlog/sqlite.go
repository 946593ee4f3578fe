package runlog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder stores run records in a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	time        TEXT NOT NULL,
	phase       TEXT NOT NULL,
	source      TEXT NOT NULL,
	success     INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(time);
`

// OpenSQLite opens (creating if needed) a SQLite-backed run log.
func OpenSQLite(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

// Append inserts one run record.
func (r *SQLiteRecorder) Append(rec Record) error {
	success := 0
	if rec.Success {
		success = 1
	}
	_, err := r.db.Exec(
		`INSERT INTO runs (id, time, phase, source, success, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Time.UTC().Format(timeLayout),
		rec.Phase, rec.Source, success, rec.Error, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *SQLiteRecorder) Recent(limit int) ([]Record, error) {
	rows, err := r.db.Query(
		`SELECT id, time, phase, source, success, error, duration_ms
		 FROM runs ORDER BY time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var timeText string
		var success int
		var durationMS int64
		if err := rows.Scan(&rec.ID, &timeText, &rec.Phase, &rec.Source, &success, &rec.Error, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Success = success != 0
		rec.Duration = asDuration(durationMS)
		if t, err := parseTime(timeText); err == nil {
			rec.Time = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
