package main

import (
	"math/rand"
	"time"
)

// SpawnPeriod returns the time between spawn attempts for a wave
func SpawnPeriod(wave int) time.Duration {
	return max(SpawnPeriodMin, SpawnPeriodMax-time.Duration(wave)*SpawnPeriodCut)
}

// PopulationCap returns the live-enemy limit for a wave
func PopulationCap(wave int) int {
	return wave + PopulationBase
}

// SpawnDirector creates enemies on a wave-paced timer, capped by population
type SpawnDirector struct {
	Origin  Vec3
	elapsed time.Duration
	wave    int
	rng     *rand.Rand
}

// NewSpawnDirector creates a director spawning around origin
func NewSpawnDirector(origin Vec3, rng *rand.Rand) *SpawnDirector {
	return &SpawnDirector{Origin: origin, rng: rng}
}

// Reset clears the period accumulator
func (s *SpawnDirector) Reset() {
	s.elapsed = 0
	s.wave = 0
}

// Update accumulates dt and returns the enemies to add this frame. At most
// one enemy is produced per elapsed period and never beyond the cap.
func (s *SpawnDirector) Update(dt time.Duration, wave, live int) []*Enemy {
	if wave != s.wave {
		// the period restarts whenever the wave changes
		s.wave = wave
		s.elapsed = 0
	}
	s.elapsed += dt
	period := SpawnPeriod(wave)

	var out []*Enemy
	for s.elapsed >= period {
		s.elapsed -= period
		if live+len(out) >= PopulationCap(wave) {
			continue
		}
		pos := RingPosition(s.rng, s.Origin)
		out = append(out, NewEnemy(RandomArchetype(s.rng), pos, wave))
	}
	return out
}
