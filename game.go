package main

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// MoveIntent is the held movement keys for a frame
type MoveIntent struct {
	Forward, Back, Left, Right bool
	Sprint                     bool
}

// Input is everything the player did since the last frame
type Input struct {
	Move         MoveIntent
	LookX, LookY float64 // mouse delta in pixels
	Fire         bool
	Reload       bool
	Ability      bool
}

// RunEvent is a notable moment in a run, drained by the host after each frame
type RunEvent struct {
	Type  string
	Wave  int
	Score int
	Kills int
	At    time.Duration
}

// RunResult summarizes a finished run
type RunResult struct {
	Wave     int
	Score    int
	Kills    int
	Duration time.Duration
}

// Game is the simulation context for one run. It is not safe for concurrent
// use: a single driver goroutine owns it and calls Update once per frame.
type Game struct {
	log      *zap.Logger
	rng      *rand.Rand
	sched    *Scheduler
	ents     *Entities
	world    *HitboxWorld
	player   *Player
	vitals   Vitals
	waves    WaveController
	spawner  *SpawnDirector
	grid     GroundGrid
	gridBuf  []int
	maxDelta time.Duration
	paused   bool
	frame    uint64

	muzzleFlash bool
	status      string
	flashTask   TaskID
	statusTask  TaskID
	reloadTask  TaskID
	streakTask  TaskID

	events []RunEvent
}

// NewGame creates a game in the Idle phase
func NewGame(log *zap.Logger, rng *rand.Rand) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	ents := NewEntities()
	player := NewPlayer()
	return &Game{
		log:      log,
		rng:      rng,
		sched:    NewScheduler(),
		ents:     ents,
		world:    NewHitboxWorld(ents.Enemies),
		player:   player,
		vitals:   NewVitals(),
		waves:    NewWaveController(),
		spawner:  NewSpawnDirector(player.Pos.Ground(), rng),
		maxDelta: DefaultMaxFrameDelta,
	}
}

// SetMaxFrameDelta changes the per-frame clamp
func (g *Game) SetMaxFrameDelta(d time.Duration) {
	if d > 0 {
		g.maxDelta = d
	}
}

// StartRun begins a run from Idle or after Game Over
func (g *Game) StartRun() bool {
	if g.waves.Running() {
		return false
	}
	g.reset()
	g.log.Info("run started")
	return true
}

// RestartRun discards the current run, cancelling all pending timers, and
// starts again at wave 1
func (g *Game) RestartRun() {
	g.reset()
	g.log.Info("run restarted")
}

func (g *Game) reset() {
	g.sched.Reset()
	g.ents.Clear()
	g.player = NewPlayer()
	g.vitals = NewVitals()
	g.waves.Start()
	g.spawner.Reset()
	g.paused = false
	g.frame = 0
	g.muzzleFlash = false
	g.status = ""
	g.flashTask, g.statusTask, g.reloadTask, g.streakTask = 0, 0, 0, 0
	g.events = g.events[:0]
	g.emit(EvtRunStart)
}

// Pause suspends the run. Game time, and with it every timer, stops.
func (g *Game) Pause() bool {
	if !g.waves.Running() || g.paused {
		return false
	}
	g.paused = true
	return true
}

// Resume continues a paused run
func (g *Game) Resume() bool {
	if !g.paused {
		return false
	}
	g.paused = false
	return true
}

// Phase returns the current lifecycle phase
func (g *Game) Phase() Phase { return g.waves.Phase }

// Paused reports whether the run is suspended
func (g *Game) Paused() bool { return g.paused }

// Vitals returns a copy of the player's vitals
func (g *Game) Vitals() Vitals { return g.vitals }

// Wave returns the current wave number
func (g *Game) Wave() int { return g.waves.Wave }

// Kills returns the number of kills this run
func (g *Game) Kills() int { return g.waves.Kills }

// Player returns the player body
func (g *Game) Player() *Player { return g.player }

// Entities returns the live entity registries
func (g *Game) Entities() *Entities { return g.ents }

// World returns the built-in hitbox world
func (g *Game) World() *HitboxWorld { return g.world }

// Elapsed returns game time since the run started
func (g *Game) Elapsed() time.Duration { return g.sched.Now() }

// Result summarizes the run so far
func (g *Game) Result() RunResult {
	return RunResult{
		Wave:     g.waves.Wave,
		Score:    g.vitals.Score,
		Kills:    g.waves.Kills,
		Duration: g.sched.Now(),
	}
}

// DrainEvents returns and clears the events raised since the last call
func (g *Game) DrainEvents() []RunEvent {
	if len(g.events) == 0 {
		return nil
	}
	out := make([]RunEvent, len(g.events))
	copy(out, g.events)
	g.events = g.events[:0]
	return out
}

func (g *Game) emit(typ string) {
	g.events = append(g.events, RunEvent{
		Type:  typ,
		Wave:  g.waves.Wave,
		Score: g.vitals.Score,
		Kills: g.waves.Kills,
		At:    g.sched.Now(),
	})
}

// acceptingActions reports whether player actions can take effect
func (g *Game) acceptingActions() bool {
	return g.waves.Running() && !g.paused
}

// Update advances the run by one frame. world answers hit tests for shots
// fired this frame; nil uses the built-in hitboxes.
func (g *Game) Update(dt time.Duration, in Input, world World) {
	if !g.acceptingActions() {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > g.maxDelta {
		dt = g.maxDelta
	}
	g.frame++
	secs := dt.Seconds()

	g.sched.Advance(dt)

	g.player.Look(in.LookX, in.LookY)
	g.player.Move(in.Move, secs)

	if in.Reload {
		g.Reload()
	}
	if in.Fire {
		g.Fire(world)
	}
	if in.Ability {
		g.TriggerAbility()
	}

	g.updateProjectiles(secs)
	if g.updateEnemies(secs) {
		return
	}
	g.collectPowerUps()

	if g.waves.SpawnAllowed() {
		for _, e := range g.spawner.Update(dt, g.waves.Wave, g.ents.Enemies.Len()) {
			g.addEnemy(e)
		}
	}
	g.checkWave()
}

// SpawnEnemy places an enemy of the given archetype at pos, scaled for the
// current wave, and returns it
func (g *Game) SpawnEnemy(a Archetype, pos Vec3) *Enemy {
	e := NewEnemy(a, pos, g.waves.Wave)
	g.addEnemy(e)
	return e
}

func (g *Game) addEnemy(e *Enemy) {
	g.ents.Enemies.Add(e)
	g.waves.NoteEnemy()
}

func (g *Game) updateProjectiles(dt float64) {
	var spent []string
	for _, p := range g.ents.Projectiles.List() {
		p.Update(dt)
		if !p.Alive {
			spent = append(spent, p.ID)
		}
	}
	for _, id := range spent {
		g.ents.Projectiles.Remove(id)
	}
}

// updateEnemies steers every enemy and resolves contact. Contacting enemies
// strike once and are removed without credit. Returns true if the player died.
func (g *Game) updateEnemies(dt float64) bool {
	var contacts []string
	defer func() {
		for _, id := range contacts {
			g.ents.Enemies.Remove(id)
		}
	}()

	for _, e := range g.ents.Enemies.List() {
		if !e.Alive {
			continue
		}
		if e.Seek(g.player.Pos, g.waves.Wave, dt) >= ContactRadius {
			continue
		}
		e.Alive = false
		contacts = append(contacts, e.ID)
		if g.vitals.TakeDamage(e.Damage) {
			g.gameOver()
			return true
		}
	}
	return false
}

func (g *Game) collectPowerUps() {
	for _, p := range g.ents.PowerUps.List() {
		if !p.InReach(g.player.Pos) || !g.ents.PowerUps.Remove(p.ID) {
			continue
		}
		g.showStatus(p.Apply(&g.vitals))
	}
}

func (g *Game) checkWave() {
	if !g.waves.Check(g.ents.Enemies.Len()) {
		return
	}
	g.log.Debug("wave cleared", zap.Int("wave", g.waves.Wave), zap.Int("score", g.vitals.Score))
	g.emit(EvtWaveCleared)
	g.sched.After(WaveGraceDelay, func() {
		if !g.waves.Advance() {
			return
		}
		g.spawner.Reset()
		g.log.Info("wave started", zap.Int("wave", g.waves.Wave))
		g.emit(EvtWaveStarted)
	})
}

func (g *Game) gameOver() {
	if !g.waves.End() {
		return
	}
	g.log.Info("game over",
		zap.Int("wave", g.waves.Wave),
		zap.Int("score", g.vitals.Score),
		zap.Int("kills", g.waves.Kills),
		zap.Duration("elapsed", g.sched.Now()),
	)
	g.emit(EvtGameOver)
}

// showStatus displays a transient message, replacing any current one
func (g *Game) showStatus(msg string) {
	if msg == "" {
		return
	}
	g.sched.Cancel(g.statusTask)
	g.status = msg
	g.statusTask = g.sched.After(StatusMessageTTL, func() {
		g.status = ""
		g.statusTask = 0
	})
}

// Snapshot returns the render surface for this frame
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frame:  g.frame,
		Phase:  g.waves.Phase.String(),
		Paused: g.paused,
		Vitals: VitalsState{
			Health:    g.vitals.Health,
			Ammo:      g.vitals.Ammo,
			Wave:      g.waves.Wave,
			Score:     g.vitals.Score,
			Streak:    g.vitals.Streak,
			Charge:    g.vitals.Charge,
			Reloading: g.vitals.Reloading,
		},
		Player: PlayerState{
			X:     round1(g.player.Pos.X),
			Y:     round1(g.player.Pos.Y),
			Z:     round1(g.player.Pos.Z),
			Yaw:   g.player.Yaw,
			Pitch: g.player.Pitch,
		},
		Enemies:     make([]EnemyState, 0, g.ents.Enemies.Len()),
		PowerUps:    make([]PowerUpState, 0, g.ents.PowerUps.Len()),
		Projectiles: make([]ProjectileState, 0, g.ents.Projectiles.Len()),
		MuzzleFlash: g.muzzleFlash,
		Status:      g.status,
	}
	for _, e := range g.ents.Enemies.List() {
		s.Enemies = append(s.Enemies, e.ToState())
	}
	for _, p := range g.ents.PowerUps.List() {
		s.PowerUps = append(s.PowerUps, p.ToState())
	}
	for _, p := range g.ents.Projectiles.List() {
		s.Projectiles = append(s.Projectiles, p.ToState())
	}
	return s
}
