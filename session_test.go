package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockBroadcaster captures sent messages for testing
type mockBroadcaster struct {
	mu     sync.Mutex
	json   []interface{}
	frames [][]byte
}

func (m *mockBroadcaster) SendJSON(msg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.json = append(m.json, msg)
}

func (m *mockBroadcaster) SendBinary(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, data)
}

func (m *mockBroadcaster) frameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

func (m *mockBroadcaster) lastSnapshot(t *testing.T) Snapshot {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.frames)
	snap, err := DecodeSnapshot(m.frames[len(m.frames)-1])
	require.NoError(t, err)
	return snap
}

func (m *mockBroadcaster) envelopes(typ string) []Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Envelope
	for _, msg := range m.json {
		if env, ok := msg.(Envelope); ok && env.T == typ {
			out = append(out, env)
		}
	}
	return out
}

var testSessionOptions = SessionOptions{TickRate: 60, BroadcastRate: 60, MaxFrameDelta: DefaultMaxFrameDelta, Seed: 1}

func newTestSession(out Broadcaster) *Session {
	return NewSession(out, testSessionOptions, nil, zap.NewNop())
}

func TestSessionStartBroadcastsOnce(t *testing.T) {
	out := &mockBroadcaster{}
	s := newTestSession(out)

	s.apply(command{kind: cmdStart})
	require.Equal(t, 1, out.frameCount())
	assert.Equal(t, "active", out.lastSnapshot(t).Phase)

	s.broadcast()
	assert.Equal(t, 1, out.frameCount(), "identical frames are suppressed")

	s.apply(command{kind: cmdStart})
	assert.Len(t, out.envelopes(MsgError), 1, "start during a run is rejected")
}

func TestSessionMergesInput(t *testing.T) {
	s := newTestSession(&mockBroadcaster{})
	s.merge(ClientInput{Forward: true, DYaw: 10, Fire: true})
	s.merge(ClientInput{Left: true, DYaw: 5, DPitch: -3})

	assert.Equal(t, MoveIntent{Left: true}, s.pending.Move, "held keys take the latest message")
	assert.Equal(t, 15.0, s.pending.LookX)
	assert.Equal(t, -3.0, s.pending.LookY)
	assert.True(t, s.pending.Fire, "actions stay latched")
	assert.False(t, s.pending.Reload)
}

func TestSessionStepConsumesActions(t *testing.T) {
	out := &mockBroadcaster{}
	s := newTestSession(out)
	s.apply(command{kind: cmdStart})

	s.merge(ClientInput{Forward: true, Fire: true, DYaw: 40})
	s.step(frame)

	v := s.game.Vitals()
	assert.Equal(t, AmmoCapacity-1, v.Ammo)
	assert.Equal(t, MoveIntent{Forward: true}, s.pending.Move)
	assert.False(t, s.pending.Fire)
	assert.Zero(t, s.pending.LookX)

	snap := out.lastSnapshot(t)
	assert.Equal(t, uint64(1), snap.Frame)
	assert.True(t, snap.MuzzleFlash)
	assert.InDelta(t, -0.1, snap.Player.Yaw, 1e-9)
}

func TestSessionPauseStopsFrames(t *testing.T) {
	out := &mockBroadcaster{}
	s := newTestSession(out)
	s.apply(command{kind: cmdStart})
	s.apply(command{kind: cmdPause})
	assert.True(t, out.lastSnapshot(t).Paused)

	n := out.frameCount()
	for i := 0; i < 5; i++ {
		s.step(frame)
	}
	assert.Equal(t, n, out.frameCount(), "a paused run sends no new frames")

	s.apply(command{kind: cmdResume})
	s.step(frame)
	assert.False(t, out.lastSnapshot(t).Paused)
}

func TestSessionDropsInputWhilePaused(t *testing.T) {
	s := newTestSession(&mockBroadcaster{})
	s.apply(command{kind: cmdStart})
	s.apply(command{kind: cmdPause})

	s.merge(ClientInput{Forward: true, Fire: true, Ability: true, DYaw: 400})
	s.step(frame)
	assert.Equal(t, Input{Move: MoveIntent{Forward: true}}, s.pending)

	s.apply(command{kind: cmdResume})
	s.step(frame)
	assert.Equal(t, AmmoCapacity, s.game.Vitals().Ammo, "fire pressed while paused is not replayed")
	assert.Zero(t, s.game.player.Yaw)
}

func TestSessionNewRunStartsWithoutStaleInput(t *testing.T) {
	s := newTestSession(&mockBroadcaster{})
	s.merge(ClientInput{Fire: true, Reload: true, DYaw: 400})
	s.apply(command{kind: cmdStart})
	s.step(frame)
	assert.Equal(t, AmmoCapacity, s.game.Vitals().Ammo)
	assert.Zero(t, s.game.player.Yaw)

	s.merge(ClientInput{Left: true, Fire: true, DPitch: 50})
	s.apply(command{kind: cmdRestart})
	assert.Equal(t, Input{Move: MoveIntent{Left: true}}, s.pending, "restart keeps held keys only")
	s.step(frame)
	assert.Equal(t, AmmoCapacity, s.game.Vitals().Ammo)
	assert.Zero(t, s.game.player.Pitch)
}

func TestSessionReportsGameOver(t *testing.T) {
	out := &mockBroadcaster{}
	db := openTestDB(t)
	analytics := NewAnalytics(db, zap.NewNop())
	s := NewSession(out, testSessionOptions, analytics, zap.NewNop())

	s.apply(command{kind: cmdStart})
	s.game.vitals.Health = 1
	s.game.SpawnEnemy(ArchetypeQA, Vec3{X: 0, Z: 6})
	s.step(frame)

	overs := out.envelopes(MsgGameOver)
	require.Len(t, overs, 1)
	msg, ok := overs[0].Data.(GameOverMsg)
	require.True(t, ok)
	assert.Equal(t, 1, msg.Wave)
	assert.Zero(t, msg.Score)
	assert.Equal(t, "gameover", out.lastSnapshot(t).Phase)

	analytics.Stop()
	runs, err := db.TopRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, s.ID, runs[0].SessionID)

	s.apply(command{kind: cmdRestart})
	assert.Equal(t, "active", out.lastSnapshot(t).Phase)
}

func TestSessionRunLoop(t *testing.T) {
	out := &mockBroadcaster{}
	s := newTestSession(out)
	go s.Run()

	s.Start()
	s.HandleInput(ClientInput{Fire: true})
	assert.Eventually(t, func() bool {
		out.mu.Lock()
		defer out.mu.Unlock()
		if len(out.frames) == 0 {
			return false
		}
		snap, err := DecodeSnapshot(out.frames[len(out.frames)-1])
		return err == nil && snap.Vitals.Ammo == AmmoCapacity-1
	}, 2*time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
	s.Pause() // no loop left to receive it
	assert.Equal(t, PhaseActive, s.game.Phase())
}

func TestSessionManagerLimit(t *testing.T) {
	sm := NewSessionManager(2, testSessionOptions, nil, nil)
	a := sm.CreateSession(&mockBroadcaster{})
	b := sm.CreateSession(&mockBroadcaster{})
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Nil(t, sm.CreateSession(&mockBroadcaster{}))
	assert.Equal(t, 2, sm.Count())
	assert.Same(t, a, sm.GetSession(a.ID))

	sm.RemoveSession(a.ID)
	sm.RemoveSession(a.ID)
	assert.Nil(t, sm.GetSession(a.ID))
	assert.NotNil(t, sm.CreateSession(&mockBroadcaster{}))

	sm.StopAll()
	assert.Zero(t, sm.Count())
}
