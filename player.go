package main

import "math"

// Vitals is the player's resource state. Every mutation clamps at the site.
type Vitals struct {
	Health    int
	Ammo      int
	Score     int
	Streak    int
	Charge    int
	Reloading bool
}

// NewVitals returns the state a fresh run starts with
func NewVitals() Vitals {
	return Vitals{
		Health: PlayerStartHealth,
		Ammo:   AmmoCapacity,
	}
}

// TakeDamage reduces health, clamped at 0, and reports whether the player is down
func (v *Vitals) TakeDamage(dmg int) bool {
	if dmg < 0 {
		dmg = 0
	}
	v.Health = ClampInt(v.Health-dmg, 0, ShieldPickupCap)
	return v.Health == 0
}

// Heal adds amount up to cap. Health already above cap is left alone.
func (v *Vitals) Heal(amount, cap int) {
	if v.Health >= cap {
		return
	}
	v.Health = ClampInt(v.Health+amount, 0, cap)
}

// AddAmmo refills up to the magazine size
func (v *Vitals) AddAmmo(n int) {
	v.Ammo = ClampInt(v.Ammo+n, 0, AmmoCapacity)
}

// AddCharge accumulates ability charge up to the maximum
func (v *Vitals) AddCharge(n int) {
	v.Charge = ClampInt(v.Charge+n, 0, AbilityChargeMax)
}

// CanFire returns true if a shot would be accepted
func (v *Vitals) CanFire() bool {
	return v.Ammo > 0 && !v.Reloading
}

// CanReload returns true if a reload would be accepted
func (v *Vitals) CanReload() bool {
	return !v.Reloading && v.Ammo < AmmoCapacity
}

// Player is the first-person body driven by movement intent and look deltas
type Player struct {
	Pos   Vec3
	Yaw   float64 // radians, 0 looks down -Z
	Pitch float64
}

// NewPlayer places the player at the run start position
func NewPlayer() *Player {
	return &Player{Pos: Vec3{X: 0, Y: EyeHeight, Z: 6}}
}

// Look applies a mouse delta in pixels
func (p *Player) Look(dx, dy float64) {
	p.Yaw -= dx * LookSensitivity
	p.Pitch = Clamp(p.Pitch-dy*LookSensitivity, -math.Pi/2, math.Pi/2)
}

// Move walks the player on the floor relative to its yaw
func (p *Player) Move(in MoveIntent, dt float64) {
	fx, fz := -math.Sin(p.Yaw), -math.Cos(p.Yaw) // forward
	rx, rz := math.Cos(p.Yaw), -math.Sin(p.Yaw)  // right

	var mx, mz float64
	if in.Forward {
		mx += fx
		mz += fz
	}
	if in.Back {
		mx -= fx
		mz -= fz
	}
	if in.Right {
		mx += rx
		mz += rz
	}
	if in.Left {
		mx -= rx
		mz -= rz
	}
	if mx == 0 && mz == 0 {
		return
	}

	speed := WalkSpeed
	if in.Sprint {
		speed = SprintSpeed
	}
	// Keys add per axis; diagonals are not normalized.
	p.Pos.X = Clamp(p.Pos.X+mx*speed*dt, -ArenaHalfExtent, ArenaHalfExtent)
	p.Pos.Z = Clamp(p.Pos.Z+mz*speed*dt, -ArenaHalfExtent, ArenaHalfExtent)
}

// Facing returns the unit view direction from yaw and pitch
func (p *Player) Facing() Vec3 {
	cp := math.Cos(p.Pitch)
	return Vec3{
		X: -math.Sin(p.Yaw) * cp,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cp,
	}
}

// Aim returns the ray a shot travels along
func (p *Player) Aim() Ray {
	return Ray{Origin: p.Pos, Dir: p.Facing()}
}
