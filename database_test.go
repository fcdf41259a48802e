package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunLedger(t *testing.T) {
	db := openTestDB(t)

	_, err := db.InsertRun("a", RunResult{Wave: 2, Score: 500, Kills: 4, Duration: 90 * time.Second})
	require.NoError(t, err)
	_, err = db.InsertRun("b", RunResult{Wave: 5, Score: 1800, Kills: 14, Duration: 4 * time.Minute})
	require.NoError(t, err)
	_, err = db.InsertRun("c", RunResult{Wave: 1, Score: 0, Kills: 0, Duration: 12 * time.Second})
	require.NoError(t, err)

	runs, err := db.TopRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].SessionID)
	assert.Equal(t, 1800, runs[0].Score)
	assert.Equal(t, 5, runs[0].Wave)
	assert.Equal(t, 240.0, runs[0].Duration)
	assert.Equal(t, "a", runs[1].SessionID)
}

func TestOpenDBMigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	_, err = db.InsertRun("x", RunResult{Wave: 1, Score: 10})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.TopRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestAnalyticsFlushesOnStop(t *testing.T) {
	db := openTestDB(t)
	a := NewAnalytics(db, zap.NewNop())

	a.Track("s1", RunEvent{Type: EvtRunStart, Wave: 1})
	a.Track("s1", RunEvent{Type: EvtWaveCleared, Wave: 1, Score: 300, Kills: 3})
	a.Track("s1", RunEvent{Type: EvtWaveStarted, Wave: 2, Score: 300, Kills: 3})
	a.Track("s1", RunEvent{Type: EvtGameOver, Wave: 2, Score: 420, Kills: 4, At: 95 * time.Second})
	a.RecordRun("s1", RunResult{Wave: 2, Score: 420, Kills: 4, Duration: time.Minute})
	a.Stop()
	a.Stop()

	counts, err := db.EventCounts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		EvtRunStart:    1,
		EvtWaveCleared: 1,
		EvtWaveStarted: 1,
		EvtGameOver:    1,
	}, counts)

	var atMS int64
	require.NoError(t, db.conn.QueryRow(`SELECT at_ms FROM run_events WHERE event_type = ?`, EvtGameOver).Scan(&atMS))
	assert.Equal(t, int64(95000), atMS, "events keep their game time")

	runs, err := db.TopRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 420, runs[0].Score)
}

func TestAnalyticsWithoutDB(t *testing.T) {
	a := NewAnalytics(nil, nil)
	a.Track("s", RunEvent{Type: EvtRunStart})
	a.RecordRun("s", RunResult{})
	a.Stop()
}
