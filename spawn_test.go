package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnPeriod(t *testing.T) {
	assert.Equal(t, 2420*time.Millisecond, SpawnPeriod(1))
	assert.Equal(t, 1700*time.Millisecond, SpawnPeriod(5))
	assert.Equal(t, SpawnPeriodMin, SpawnPeriod(10))
	assert.Equal(t, SpawnPeriodMin, SpawnPeriod(50))
}

func TestPopulationCap(t *testing.T) {
	assert.Equal(t, 7, PopulationCap(1))
	assert.Equal(t, 16, PopulationCap(10))
}

func TestSpawnDirectorOnePerPeriod(t *testing.T) {
	d := NewSpawnDirector(Vec3{}, rand.New(rand.NewSource(7)))
	period := SpawnPeriod(1)

	assert.Empty(t, d.Update(period-time.Millisecond, 1, 0))
	out := d.Update(time.Millisecond, 1, 0)
	require.Len(t, out, 1)

	e := out[0]
	assert.True(t, e.Alive)
	assert.InDelta(t, GetArchetypeDef(e.Archetype).BaseHealth*WaveScale(1), e.HP, 1e-9)
	dist := GroundDistance(e.Pos, Vec3{})
	assert.GreaterOrEqual(t, dist, SpawnRingMin-1e-9)
	assert.Less(t, dist, SpawnRingMax)
	assert.Zero(t, e.Pos.Y)
}

func TestSpawnDirectorRespectsCap(t *testing.T) {
	d := NewSpawnDirector(Vec3{}, rand.New(rand.NewSource(7)))
	out := d.Update(10*SpawnPeriod(1), 1, 0)
	assert.Len(t, out, PopulationCap(1))

	out = d.Update(10*SpawnPeriod(1), 1, PopulationCap(1))
	assert.Empty(t, out)
}

func TestSpawnDirectorRestartsOnWaveChange(t *testing.T) {
	d := NewSpawnDirector(Vec3{}, rand.New(rand.NewSource(7)))
	d.Update(SpawnPeriod(1)-time.Millisecond, 1, 0)
	assert.Empty(t, d.Update(time.Millisecond, 2, 0), "elapsed time does not carry into the next wave")
}

func TestSpawnDirectorDeterministic(t *testing.T) {
	a := NewSpawnDirector(Vec3{}, rand.New(rand.NewSource(42)))
	b := NewSpawnDirector(Vec3{}, rand.New(rand.NewSource(42)))
	ea := a.Update(5*SpawnPeriod(3), 3, 0)
	eb := b.Update(5*SpawnPeriod(3), 3, 0)
	require.Len(t, ea, 5)
	for i := range ea {
		assert.Equal(t, ea[i].Pos, eb[i].Pos)
		assert.Equal(t, ea[i].Archetype, eb[i].Archetype)
	}
}
