package main

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Broadcaster sends messages to the renderer attached to a session
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// SessionOptions are the host settings each session runs with
type SessionOptions struct {
	TickRate      int
	BroadcastRate int
	MaxFrameDelta time.Duration
	Seed          int64 // 0 seeds from the clock
}

func (o SessionOptions) tickDuration() time.Duration {
	if o.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(o.TickRate)
}

func (o SessionOptions) broadcastEvery() int {
	if o.BroadcastRate <= 0 || o.BroadcastRate >= o.TickRate {
		return 1
	}
	return o.TickRate / o.BroadcastRate
}

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdRestart
	cmdPause
	cmdResume
	cmdInput
)

type command struct {
	kind  cmdKind
	input ClientInput
}

// Session is one private run driven for one renderer. The loop goroutine
// owns the Game; everything else talks to it through cmds.
type Session struct {
	ID string

	game      *Game
	out       Broadcaster
	log       *zap.Logger
	analytics *Analytics
	opts      SessionOptions

	cmds     chan command
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	pending  Input
	ticks    uint64
	lastHash uint64
}

// NewSession creates a session in the Idle phase. Call Run to drive it.
func NewSession(out Broadcaster, opts SessionOptions, analytics *Analytics, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id := GenerateID()
	log = log.With(zap.String("session", id))

	game := NewGame(log, rand.New(rand.NewSource(seed)))
	game.SetMaxFrameDelta(opts.MaxFrameDelta)

	return &Session{
		ID:        id,
		game:      game,
		out:       out,
		log:       log,
		analytics: analytics,
		opts:      opts,
		cmds:      make(chan command, 64),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run drives the game loop until Stop is called
func (s *Session) Run() {
	defer close(s.done)

	ticker := time.NewTicker(s.opts.tickDuration())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case cmd := <-s.cmds:
			s.apply(cmd)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.step(dt)
		case <-s.stop:
			return
		}
	}
}

// Stop terminates the loop and waits for it to exit
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Start asks for a new run
func (s *Session) Start() { s.submit(command{kind: cmdStart}) }

// Restart discards the current run and starts over
func (s *Session) Restart() { s.submit(command{kind: cmdRestart}) }

// Pause suspends the run
func (s *Session) Pause() { s.submit(command{kind: cmdPause}) }

// Resume continues a paused run
func (s *Session) Resume() { s.submit(command{kind: cmdResume}) }

// HandleInput queues renderer input for the next frame
func (s *Session) HandleInput(in ClientInput) { s.submit(command{kind: cmdInput, input: in}) }

func (s *Session) submit(cmd command) {
	select {
	case s.cmds <- cmd:
	case <-s.stop:
	}
}

// apply runs on the loop goroutine
func (s *Session) apply(cmd command) {
	switch cmd.kind {
	case cmdStart:
		if !s.game.StartRun() {
			s.out.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "run already in progress"}})
			break
		}
		s.dropActions()
	case cmdRestart:
		s.game.RestartRun()
		s.dropActions()
	case cmdPause:
		s.game.Pause()
	case cmdResume:
		s.game.Resume()
	case cmdInput:
		s.merge(cmd.input)
		return
	}
	s.publishEvents()
	s.broadcast()
}

// merge folds an input message into the frame's pending input. Held keys
// take the latest value, look deltas add up, and actions stay latched until
// a frame consumes them.
func (s *Session) merge(in ClientInput) {
	s.pending.Move = MoveIntent{
		Forward: in.Forward,
		Back:    in.Back,
		Left:    in.Left,
		Right:   in.Right,
		Sprint:  in.Sprint,
	}
	s.pending.LookX += in.DYaw
	s.pending.LookY += in.DPitch
	s.pending.Fire = s.pending.Fire || in.Fire
	s.pending.Reload = s.pending.Reload || in.Reload
	s.pending.Ability = s.pending.Ability || in.Ability
}

// dropActions clears latched actions and look deltas, keeping held keys
func (s *Session) dropActions() {
	s.pending = Input{Move: s.pending.Move}
}

// step advances one frame and broadcasts on the broadcast cadence
func (s *Session) step(dt time.Duration) {
	if s.game.acceptingActions() {
		s.game.Update(dt, s.pending, nil)
	}
	// input a paused or idle frame could not take is rejected, never carried over
	s.dropActions()
	s.publishEvents()

	s.ticks++
	if s.ticks%uint64(s.opts.broadcastEvery()) == 0 {
		s.broadcast()
	}
}

func (s *Session) publishEvents() {
	for _, evt := range s.game.DrainEvents() {
		if s.analytics != nil {
			s.analytics.Track(s.ID, evt)
		}
		if evt.Type != EvtGameOver {
			continue
		}
		res := s.game.Result()
		s.out.SendJSON(Envelope{T: MsgGameOver, Data: GameOverMsg{
			Wave:   res.Wave,
			Score:  res.Score,
			Kills:  res.Kills,
			Length: res.Duration.Seconds(),
		}})
		if s.analytics != nil {
			s.analytics.RecordRun(s.ID, res)
		}
	}
}

// broadcast sends the current snapshot unless it is byte-identical to the
// previous one
func (s *Session) broadcast() {
	data, err := EncodeSnapshot(s.game.Snapshot())
	if err != nil {
		s.log.Error("encode snapshot", zap.Error(err))
		return
	}
	h := xxhash.Sum64(data)
	if h == s.lastHash {
		return
	}
	s.lastHash = h
	s.out.SendBinary(data)
}

// EncodeSnapshot packs a snapshot into a binary state frame
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	return msgpack.Marshal(&snap)
}

// DecodeSnapshot unpacks a binary state frame
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}

// SessionManager tracks the live sessions
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	opts        SessionOptions
	analytics   *Analytics
	log         *zap.Logger
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(maxSessions int, opts SessionOptions, analytics *Analytics, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		opts:        opts,
		analytics:   analytics,
		log:         log,
	}
}

// CreateSession creates and starts a session. Returns nil if limit reached.
func (sm *SessionManager) CreateSession(out Broadcaster) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		return nil
	}
	sess := NewSession(out, sm.opts, sm.analytics, sm.log)
	sm.sessions[sess.ID] = sess
	go sess.Run()
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveSession stops a session and forgets it
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()
	if ok {
		sess.Stop()
	}
}

// StopAll stops every session
func (sm *SessionManager) StopAll() {
	sm.mu.Lock()
	all := make([]*Session, 0, len(sm.sessions))
	for id, sess := range sm.sessions {
		all = append(all, sess)
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()
	for _, sess := range all {
		sess.Stop()
	}
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
