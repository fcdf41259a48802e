package main

import (
	"math"
	"math/rand"
)

// Enemy is an AI-controlled attacker that walks straight at the player
type Enemy struct {
	ID          string
	Archetype   Archetype
	Pos         Vec3
	HP          float64
	MaxHP       float64
	HealthScale float64 // wave multiplier applied at spawn
	Speed       float64 // base speed, scaled by wave every frame
	Damage      int
	Points      int
	Alive       bool
}

func (e *Enemy) EntityID() string { return e.ID }
func (e *Enemy) setID(id string)  { e.ID = id }

// NewEnemy builds an enemy of the given archetype with health scaled for wave
func NewEnemy(a Archetype, pos Vec3, wave int) *Enemy {
	def := GetArchetypeDef(a)
	scale := WaveScale(wave)
	hp := def.BaseHealth * scale
	return &Enemy{
		Archetype:   a,
		Pos:         pos,
		HP:          hp,
		MaxHP:       hp,
		HealthScale: scale,
		Speed:       def.Speed,
		Damage:      def.Damage,
		Points:      def.Points,
		Alive:       true,
	}
}

// RingPosition picks a uniformly random angle and a radius in
// [SpawnRingMin, SpawnRingMax) around origin, on the floor
func RingPosition(rng *rand.Rand, origin Vec3) Vec3 {
	angle := rng.Float64() * 2 * math.Pi
	dist := SpawnRingMin + rng.Float64()*(SpawnRingMax-SpawnRingMin)
	return Vec3{
		X: origin.X + math.Cos(angle)*dist,
		Y: 0,
		Z: origin.Z + math.Sin(angle)*dist,
	}
}

// Seek steps the enemy toward target on the floor and returns the remaining
// ground distance. The step never overshoots the target.
func (e *Enemy) Seek(target Vec3, wave int, dt float64) float64 {
	if !e.Alive {
		return math.Inf(1)
	}
	dx := target.X - e.Pos.X
	dz := target.Z - e.Pos.Z
	dist := math.Sqrt(dx*dx + dz*dz)
	if dist == 0 {
		return 0
	}
	step := e.Speed * WaveScale(wave) * dt
	if step > dist {
		step = dist
	}
	e.Pos.X += dx / dist * step
	e.Pos.Z += dz / dist * step
	return dist - step
}

// TakeDamage reduces HP and returns true only on the hit that kills
func (e *Enemy) TakeDamage(dmg float64) bool {
	if !e.Alive {
		return false
	}
	e.HP -= dmg
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		return true
	}
	return false
}

// ToState converts to protocol state
func (e *Enemy) ToState() EnemyState {
	return EnemyState{
		ID:    e.ID,
		Kind:  e.Archetype.String(),
		Tag:   GetArchetypeDef(e.Archetype).Tag,
		X:     round1(e.Pos.X),
		Y:     round1(e.Pos.Y),
		Z:     round1(e.Pos.Z),
		HP:    math.Ceil(e.HP),
		MaxHP: math.Ceil(e.MaxHP),
	}
}
