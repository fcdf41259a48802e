package main

// Projectile is a cosmetic tracer. Hits are resolved by the ray test at fire
// time; tracers never deal damage.
type Projectile struct {
	ID       string
	Pos      Vec3
	Vel      Vec3
	Traveled float64
	Alive    bool
}

func (p *Projectile) EntityID() string { return p.ID }
func (p *Projectile) setID(id string)  { p.ID = id }

// NewTracer creates a tracer leaving along the shot ray
func NewTracer(ray Ray) *Projectile {
	return &Projectile{
		Pos:   ray.Origin,
		Vel:   ray.Dir.Scale(TracerSpeed),
		Alive: true,
	}
}

// Update moves the tracer one frame and retires it past its range
func (p *Projectile) Update(dt float64) {
	if !p.Alive {
		return
	}
	step := p.Vel.Scale(dt)
	p.Pos = p.Pos.Add(step)
	p.Traveled += step.Len()
	if p.Traveled >= TracerMaxDist {
		p.Alive = false
	}
}

// ToState converts to protocol state
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID: p.ID,
		X:  round1(p.Pos.X),
		Y:  round1(p.Pos.Y),
		Z:  round1(p.Pos.Z),
	}
}
