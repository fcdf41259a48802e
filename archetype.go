package main

import "math/rand"

// Archetype identifies an enemy template
type Archetype int

const (
	ArchetypePM        Archetype = 0
	ArchetypeMarketing Archetype = 1
	ArchetypeQA        Archetype = 2
)

// ArchetypeDef holds the base stats for an archetype
type ArchetypeDef struct {
	Name       string
	Speed      float64 // units/s before wave scaling
	Damage     int     // contact damage
	BaseHealth float64
	Points     int
	Tag        string // renderer colour
}

var Archetypes = [3]ArchetypeDef{
	// PM: average pace, hits hardest
	{Name: "PM", Speed: 0.8, Damage: 15, BaseHealth: 120, Points: 120, Tag: "#ff5c5c"},
	// Marketing: slow and tanky
	{Name: "Marketing", Speed: 0.6, Damage: 10, BaseHealth: 160, Points: 160, Tag: "#8c5cff"},
	// QA: fast and fragile
	{Name: "QA", Speed: 1.0, Damage: 8, BaseHealth: 90, Points: 90, Tag: "#5ce0ff"},
}

// GetArchetypeDef returns the definition for an archetype
func GetArchetypeDef(a Archetype) ArchetypeDef {
	if a < 0 || int(a) >= len(Archetypes) {
		return Archetypes[ArchetypePM]
	}
	return Archetypes[a]
}

// RandomArchetype picks an archetype uniformly
func RandomArchetype(rng *rand.Rand) Archetype {
	return Archetype(rng.Intn(len(Archetypes)))
}

func (a Archetype) String() string {
	return GetArchetypeDef(a).Name
}

// WaveScale returns the health and speed multiplier for a wave
func WaveScale(wave int) float64 {
	return 1 + float64(wave)*WaveScaleStep
}
