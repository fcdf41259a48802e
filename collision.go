package main

import "math"

// Ray is a half-line used for hit tests
type Ray struct {
	Origin Vec3
	Dir    Vec3 // unit length
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// World answers hit queries for the simulation. The renderer or physics
// layer normally supplies it; HitboxWorld is the built-in fallback.
type World interface {
	// Intersects reports whether ray touches the enemy's geometry. Unknown
	// ids are a miss.
	Intersects(ray Ray, enemyID string) bool
}

// Enemy body extents around its floor position
const (
	HitboxHalfWidth = 0.5
	HitboxHeight    = 2.9
)

// HitboxWorld tests rays against an axis-aligned box around each live enemy
type HitboxWorld struct {
	enemies *Registry[*Enemy]
}

// NewHitboxWorld creates a hit tester over the given enemy registry
func NewHitboxWorld(enemies *Registry[*Enemy]) *HitboxWorld {
	return &HitboxWorld{enemies: enemies}
}

// Intersects implements World
func (w *HitboxWorld) Intersects(ray Ray, enemyID string) bool {
	e, ok := w.enemies.Get(enemyID)
	if !ok || !e.Alive {
		return false
	}
	min := Vec3{e.Pos.X - HitboxHalfWidth, e.Pos.Y, e.Pos.Z - HitboxHalfWidth}
	max := Vec3{e.Pos.X + HitboxHalfWidth, e.Pos.Y + HitboxHeight, e.Pos.Z + HitboxHalfWidth}
	return RayBoxIntersect(ray, min, max)
}

// RayBoxIntersect checks a ray against an axis-aligned box using the slab method.
// Boxes behind the origin do not count.
func RayBoxIntersect(ray Ray, min, max Vec3) bool {
	tmin := 0.0
	tmax := math.Inf(1)

	o := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	d := [3]float64{ray.Dir.X, ray.Dir.Y, ray.Dir.Z}
	lo := [3]float64{min.X, min.Y, min.Z}
	hi := [3]float64{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			// Parallel to this slab: must already be inside it
			if o[i] < lo[i] || o[i] > hi[i] {
				return false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}
