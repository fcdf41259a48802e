package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite run ledger. It records finished runs and run events;
// nothing in it is ever loaded back into a game.
type DB struct {
	conn *sql.DB
}

// RunRow is one finished run
type RunRow struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sid"`
	Wave      int       `json:"wave"`
	Score     int       `json:"score"`
	Kills     int       `json:"kills"`
	Duration  float64   `json:"secs"`
	CreatedAt time.Time `json:"at"`
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL DEFAULT '',
		wave INTEGER NOT NULL DEFAULT 1,
		score INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS run_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		session_id TEXT,
		wave INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		at_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	CREATE INDEX IF NOT EXISTS idx_run_events_type ON run_events(event_type);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InsertRun records a finished run and returns its id
func (db *DB) InsertRun(sessionID string, r RunResult) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO runs (session_id, wave, score, kills, duration) VALUES (?, ?, ?, ?, ?)",
		sessionID, r.Wave, r.Score, r.Kills, r.Duration.Seconds(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// TopRuns returns the highest scoring runs, best first
func (db *DB) TopRuns(limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, session_id, wave, score, kills, duration, created_at
		FROM runs ORDER BY score DESC, wave DESC, id ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Wave, &r.Score, &r.Kills, &r.Duration, &r.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// EventCounts returns counts of each run event type
func (db *DB) EventCounts() (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT event_type, COUNT(*) FROM run_events
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			return nil, err
		}
		result[evtType] = count
	}
	return result, rows.Err()
}
