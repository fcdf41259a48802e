package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
db_path: "off"
log_level: debug
tick_rate: 120
max_frame_delta: 50ms
seed: 42
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "off", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, 30, cfg.BroadcastRate, "unset keys keep their default")
	assert.Equal(t, 50*time.Millisecond, cfg.MaxFrameDelta)
	assert.Equal(t, int64(42), cfg.Seed)

	opts := cfg.SessionOptions()
	assert.Equal(t, time.Second/120, opts.tickDuration())
	assert.Equal(t, 4, opts.broadcastEvery())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "tick_rate: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "tick_rate: 0"))
	assert.ErrorContains(t, err, "tick_rate")

	_, err = LoadConfig(writeConfig(t, "max_frame_delta: -1s"))
	assert.ErrorContains(t, err, "max_frame_delta")
}

func TestSessionOptionsCadence(t *testing.T) {
	assert.Equal(t, 1, SessionOptions{TickRate: 30, BroadcastRate: 60}.broadcastEvery())
	assert.Equal(t, 2, SessionOptions{TickRate: 60, BroadcastRate: 30}.broadcastEvery())
	assert.Equal(t, time.Second/60, SessionOptions{}.tickDuration())
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	log.Debug("ok")

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
