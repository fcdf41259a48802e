package main

// AbilityRadius returns the shockwave reach for a wave
func AbilityRadius(wave int) float64 {
	return AbilityBaseRadius + float64(wave)*AbilityWaveRadius
}

// TriggerAbility spends a full charge on a shockwave that kills every enemy
// within AbilityRadius of the player. Kills pay out exactly like shots.
// Rejected unless the charge is full.
func (g *Game) TriggerAbility() bool {
	if !g.acceptingActions() || g.vitals.Charge < AbilityChargeMax {
		return false
	}
	g.vitals.Charge = 0
	g.showStatus("Shockwave deployed!")

	radius := AbilityRadius(g.waves.Wave)
	enemies := g.ents.Enemies.List()
	g.grid.Clear()
	for i, e := range enemies {
		g.grid.Insert(e.Pos, i)
	}
	g.gridBuf = g.grid.QueryBuf(g.player.Pos, radius, g.gridBuf[:0])
	for _, i := range g.gridBuf {
		e := enemies[i]
		if GroundDistance(e.Pos, g.player.Pos) <= radius {
			g.handleKill(e)
		}
	}
	return true
}
