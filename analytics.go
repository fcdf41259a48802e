package main

import (
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event types for run tracking
const (
	EvtRunStart    = "run_start"
	EvtWaveCleared = "wave_cleared"
	EvtWaveStarted = "wave_started"
	EvtGameOver    = "game_over"
)

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Type      string
	SessionID string
	Wave      int
	Score     int
	Kills     int
	At        time.Duration // game time into the run
	Timestamp time.Time
}

type finishedRun struct {
	sessionID string
	result    RunResult
}

// Analytics handles run tracking with batched background writes, so the
// frame loop never waits on the database
type Analytics struct {
	db     *DB
	log    *zap.Logger
	events chan AnalyticsEvent
	runs   chan finishedRun
	stop   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewAnalytics creates and starts the background writer. A nil db makes
// every write a no-op.
func NewAnalytics(db *DB, log *zap.Logger) *Analytics {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Analytics{
		db:     db,
		log:    log,
		events: make(chan AnalyticsEvent, 1024),
		runs:   make(chan finishedRun, 64),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues a run event for async persistence (non-blocking)
func (a *Analytics) Track(sessionID string, evt RunEvent) {
	select {
	case a.events <- AnalyticsEvent{
		Type:      evt.Type,
		SessionID: sessionID,
		Wave:      evt.Wave,
		Score:     evt.Score,
		Kills:     evt.Kills,
		At:        evt.At,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full; drop event rather than blocking the game loop
	}
}

// RecordRun enqueues a finished run for the ledger (non-blocking)
func (a *Analytics) RecordRun(sessionID string, r RunResult) {
	select {
	case a.runs <- finishedRun{sessionID: sessionID, result: r}:
	default:
		a.log.Warn("run ledger queue full, dropping run", zap.String("session", sessionID))
	}
}

// Stop flushes pending writes and shuts down the writer
func (a *Analytics) Stop() {
	a.once.Do(func() { close(a.stop) })
	a.wg.Wait()
}

// writer is the background goroutine that batches and writes events to DB
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, 64)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			// Flush immediately if batch is large
			if len(batch) >= 50 {
				a.flush(batch)
				batch = batch[:0]
			}
		case run := <-a.runs:
			a.insertRun(run)
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			// Drain what is already queued; producers may still be running
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
					continue
				case run := <-a.runs:
					a.insertRun(run)
					continue
				default:
				}
				break
			}
			if len(batch) > 0 {
				a.flush(batch)
			}
			return
		}
	}
}

func (a *Analytics) insertRun(run finishedRun) {
	if a.db == nil {
		return
	}
	if _, err := a.db.InsertRun(run.sessionID, run.result); err != nil {
		a.log.Error("record run", zap.String("session", run.sessionID), zap.Error(err))
	}
}

// flush writes a batch of events to the database
func (a *Analytics) flush(events []AnalyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	tx, err := a.db.conn.Begin()
	if err != nil {
		a.log.Error("analytics: begin tx", zap.Error(err))
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO run_events (event_type, session_id, wave, score, kills, at_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		a.log.Error("analytics: prepare", zap.Error(err))
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		sid := sql.NullString{String: evt.SessionID, Valid: evt.SessionID != ""}
		if _, err := stmt.Exec(evt.Type, sid, evt.Wave, evt.Score, evt.Kills, evt.At.Milliseconds(), evt.Timestamp.Format(time.RFC3339)); err != nil {
			a.log.Error("analytics: insert", zap.Error(err))
		}
	}
	if err := tx.Commit(); err != nil {
		a.log.Error("analytics: commit", zap.Error(err))
	}
}
