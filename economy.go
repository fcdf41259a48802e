package main

// handleKill credits a dead enemy. Both shots and the shockwave route through
// here; the registry removal gates it so each enemy pays out once.
func (g *Game) handleKill(e *Enemy) {
	if !g.ents.Enemies.Remove(e.ID) {
		return
	}
	e.Alive = false
	e.HP = 0

	g.vitals.Score += e.Points
	g.vitals.AddCharge(KillChargeGain)
	g.waves.NoteKill()

	g.vitals.Streak++
	g.sched.Cancel(g.streakTask)
	g.streakTask = g.sched.After(StreakDecayTime, func() {
		g.vitals.Streak = 0
		g.streakTask = 0
	})

	for _, kind := range g.rollDrops(g.vitals.Streak) {
		g.ents.PowerUps.Add(NewPowerUp(kind, e.Pos))
	}
}

// rollDrops decides which power-ups a kill at the given streak produces.
// Milestones are independent of each other and of the shield roll.
func (g *Game) rollDrops(streak int) []PowerUpKind {
	var kinds []PowerUpKind
	if streak%AmmoDropEvery == 0 {
		kinds = append(kinds, PowerUpAmmo)
	}
	if streak%HealthDropEvery == 0 {
		kinds = append(kinds, PowerUpHealth)
	}
	if g.rng.Float64() < ShieldDropOdds {
		kinds = append(kinds, PowerUpShield)
	}
	return kinds
}
