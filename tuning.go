package main

import "time"

// Player vitals
const (
	PlayerStartHealth = 100
	HealthPickupCap   = 120
	ShieldPickupCap   = 130
	AmmoCapacity      = 30
	AbilityChargeMax  = 100
)

// Combat
const (
	ShotDamage       = 55.0
	MuzzleFlashTime  = 90 * time.Millisecond
	ReloadTime       = 1400 * time.Millisecond
	KillChargeGain   = 12
	StreakDecayTime  = 4 * time.Second
	StatusMessageTTL = 2 * time.Second
)

// Drops
const (
	AmmoDropEvery   = 4
	HealthDropEvery = 6
	ShieldDropOdds  = 0.12
	DropLift        = 1.0 // power-ups float this high above the death position

	PickupRadius = 2.0
	AmmoRefill   = 15
	HealthRefill = 25
	ShieldRefill = 35
)

// Enemies and waves
const (
	ContactRadius  = 1.8
	WaveScaleStep  = 0.05 // health and speed grow by 5% per wave
	SpawnRingMin   = 30.0
	SpawnRingMax   = 65.0
	SpawnPeriodMax = 2600 * time.Millisecond
	SpawnPeriodMin = 900 * time.Millisecond
	SpawnPeriodCut = 180 * time.Millisecond // per wave
	PopulationBase = 6
	WaveGraceDelay = 2500 * time.Millisecond
)

// Ability
const (
	AbilityBaseRadius = 15.0
	AbilityWaveRadius = 1.5
)

// Player controller
const (
	WalkSpeed       = 13.2 // units/s
	SprintSpeed     = 21.0
	LookSensitivity = 0.0025 // radians per pixel
	EyeHeight       = 2.0
	ArenaHalfExtent = 120.0
)

// Tracers
const (
	TracerSpeed   = 120.0
	TracerMaxDist = 80.0
)

// DefaultMaxFrameDelta bounds a single simulation step so a stalled renderer
// cannot teleport entities across the arena.
const DefaultMaxFrameDelta = 100 * time.Millisecond
