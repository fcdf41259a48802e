package main

// Fire shoots along the player's view. Every live enemy the ray touches takes
// ShotDamage; enemies it kills go through the kill handler. Returns false,
// changing nothing, when out of ammo, reloading, paused or not in a run.
func (g *Game) Fire(world World) bool {
	if !g.acceptingActions() || !g.vitals.CanFire() {
		return false
	}
	if world == nil {
		world = g.world
	}

	g.vitals.Ammo = ClampInt(g.vitals.Ammo-1, 0, AmmoCapacity)
	g.flash()

	ray := g.player.Aim()
	g.ents.Projectiles.Add(NewTracer(ray))

	for _, e := range g.ents.Enemies.List() {
		if !e.Alive || !world.Intersects(ray, e.ID) {
			continue
		}
		if e.TakeDamage(ShotDamage) {
			g.handleKill(e)
		}
	}
	return true
}

// Reload starts refilling the magazine. Rejected while already reloading or
// when the magazine is full.
func (g *Game) Reload() bool {
	if !g.acceptingActions() || !g.vitals.CanReload() {
		return false
	}
	g.vitals.Reloading = true
	g.reloadTask = g.sched.After(ReloadTime, func() {
		g.vitals.Ammo = AmmoCapacity
		g.vitals.Reloading = false
		g.reloadTask = 0
	})
	return true
}

// flash raises the muzzle flash signal for MuzzleFlashTime
func (g *Game) flash() {
	g.sched.Cancel(g.flashTask)
	g.muzzleFlash = true
	g.flashTask = g.sched.After(MuzzleFlashTime, func() {
		g.muzzleFlash = false
		g.flashTask = 0
	})
}
