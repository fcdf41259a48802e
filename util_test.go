package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-3, 1, 5))
	assert.Equal(t, 5.0, Clamp(9, 1, 5))
	assert.Equal(t, 2.5, Clamp(2.5, 1, 5))

	assert.Equal(t, 0, ClampInt(-1, 0, 30))
	assert.Equal(t, 30, ClampInt(45, 0, 30))
	assert.Equal(t, 12, ClampInt(12, 0, 30))
}

func TestVec3Ground(t *testing.T) {
	v := Vec3{X: 3, Y: EyeHeight, Z: -4}
	assert.Equal(t, Vec3{X: 3, Z: -4}, v.Ground())
	assert.Equal(t, 5.0, v.Ground().Len())
}
