package main

// Phase is the run lifecycle state
type Phase int

const (
	PhaseIdle     Phase = 0
	PhaseActive   Phase = 1
	PhaseCleared  Phase = 2
	PhaseGameOver Phase = 3
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "gameover"
	default:
		return "idle"
	}
}

// WaveController tracks the wave number and when it may advance
type WaveController struct {
	Phase  Phase
	Wave   int
	Kills  int  // kills this run
	seeded bool // an enemy has been live during the current wave
}

// NewWaveController returns a controller in Idle at wave 1
func NewWaveController() WaveController {
	return WaveController{Phase: PhaseIdle, Wave: 1}
}

// Start begins wave 1
func (w *WaveController) Start() {
	*w = NewWaveController()
	w.Phase = PhaseActive
}

// Running reports whether the simulation should advance
func (w *WaveController) Running() bool {
	return w.Phase == PhaseActive || w.Phase == PhaseCleared
}

// SpawnAllowed reports whether the spawn director may create enemies
func (w *WaveController) SpawnAllowed() bool {
	return w.Phase == PhaseActive
}

// NoteEnemy records that the current wave has had a live enemy
func (w *WaveController) NoteEnemy() {
	if w.Phase == PhaseActive {
		w.seeded = true
	}
}

// NoteKill counts a kill toward the run
func (w *WaveController) NoteKill() {
	w.Kills++
}

// Check moves Active to Cleared when the arena has emptied and the run has a
// kill. It returns true on that transition; the caller schedules Advance.
func (w *WaveController) Check(liveEnemies int) bool {
	if w.Phase != PhaseActive || liveEnemies > 0 || !w.seeded || w.Kills == 0 {
		return false
	}
	w.Phase = PhaseCleared
	return true
}

// Advance moves Cleared to the next Active wave
func (w *WaveController) Advance() bool {
	if w.Phase != PhaseCleared {
		return false
	}
	w.Wave++
	w.Phase = PhaseActive
	w.seeded = false
	return true
}

// End moves any running phase to GameOver
func (w *WaveController) End() bool {
	if !w.Running() {
		return false
	}
	w.Phase = PhaseGameOver
	return true
}
