package main

// PowerUpKind identifies what a power-up restores
type PowerUpKind string

const (
	PowerUpAmmo   PowerUpKind = "ammo"
	PowerUpHealth PowerUpKind = "health"
	PowerUpShield PowerUpKind = "shield"
)

// PowerUp is a floating pickup dropped by a kill
type PowerUp struct {
	ID   string
	Kind PowerUpKind
	Pos  Vec3
}

func (p *PowerUp) EntityID() string { return p.ID }
func (p *PowerUp) setID(id string)  { p.ID = id }

// NewPowerUp places a power-up above a death position
func NewPowerUp(kind PowerUpKind, at Vec3) *PowerUp {
	return &PowerUp{
		Kind: kind,
		Pos:  at.Add(Vec3{Y: DropLift}),
	}
}

// InReach reports whether the player stands close enough to collect it
func (p *PowerUp) InReach(player Vec3) bool {
	return GroundDistance(p.Pos, player) < PickupRadius
}

// Apply grants the power-up's effect and returns the status line to show
func (p *PowerUp) Apply(v *Vitals) string {
	switch p.Kind {
	case PowerUpAmmo:
		v.AddAmmo(AmmoRefill)
		return "Ammo cache secured"
	case PowerUpHealth:
		v.Heal(HealthRefill, HealthPickupCap)
		return "Med kit collected"
	case PowerUpShield:
		v.Heal(ShieldRefill, ShieldPickupCap)
		return "Shield boost activated"
	}
	return ""
}

// ToState converts to protocol state
func (p *PowerUp) ToState() PowerUpState {
	return PowerUpState{
		ID:   p.ID,
		Kind: string(p.Kind),
		X:    round1(p.Pos.X),
		Y:    round1(p.Pos.Y),
		Z:    round1(p.Pos.Z),
	}
}
