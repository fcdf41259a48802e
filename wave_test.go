package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveLifecycle(t *testing.T) {
	w := NewWaveController()
	assert.Equal(t, PhaseIdle, w.Phase)
	assert.False(t, w.Running())
	assert.False(t, w.SpawnAllowed())

	w.Start()
	assert.Equal(t, PhaseActive, w.Phase)
	assert.Equal(t, 1, w.Wave)
	assert.True(t, w.SpawnAllowed())

	assert.False(t, w.Check(0), "no enemy has been live yet")
	w.NoteEnemy()
	assert.False(t, w.Check(0), "no kills yet")
	w.NoteKill()
	assert.False(t, w.Check(1), "enemies remain")

	require.True(t, w.Check(0))
	assert.Equal(t, PhaseCleared, w.Phase)
	assert.True(t, w.Running())
	assert.False(t, w.SpawnAllowed())
	assert.False(t, w.Check(0))

	require.True(t, w.Advance())
	assert.Equal(t, 2, w.Wave)
	assert.Equal(t, PhaseActive, w.Phase)
	assert.False(t, w.Advance())
	assert.False(t, w.Check(0), "the new wave needs its own enemies")

	require.True(t, w.End())
	assert.Equal(t, PhaseGameOver, w.Phase)
	assert.False(t, w.End())
	assert.False(t, w.Advance())
	assert.Equal(t, 1, w.Kills)
}

func TestWaveIgnoresEnemiesOutsideActive(t *testing.T) {
	w := NewWaveController()
	w.NoteEnemy()
	w.Start()
	w.NoteKill()
	assert.False(t, w.Check(0))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "active", PhaseActive.String())
	assert.Equal(t, "cleared", PhaseCleared.String())
	assert.Equal(t, "gameover", PhaseGameOver.String())
}
