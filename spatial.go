package main

import (
	"math"
	"slices"
)

const (
	GridCellSize = 16.0
	GridCols     = 16 // ceil(2*ArenaHalfExtent/GridCellSize) + 1
)

// GroundGrid is a fixed-size broad-phase grid over the arena floor (XZ).
// Positions outside the arena land in the edge cells.
type GroundGrid struct {
	cells [GridCols * GridCols][]int
}

// Clear resets all cells (keeps allocated capacity)
func (g *GroundGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func gridCoord(v float64) int {
	c := int(math.Floor((v + ArenaHalfExtent) / GridCellSize))
	return ClampInt(c, 0, GridCols-1)
}

// Insert adds an index at the given position
func (g *GroundGrid) Insert(pos Vec3, idx int) {
	cell := gridCoord(pos.Z)*GridCols + gridCoord(pos.X)
	g.cells[cell] = append(g.cells[cell], idx)
}

// QueryBuf appends the indices in every cell overlapping the square around
// pos and returns them in ascending order. Callers still test exact distance.
func (g *GroundGrid) QueryBuf(pos Vec3, radius float64, buf []int) []int {
	minCX, maxCX := gridCoord(pos.X-radius), gridCoord(pos.X+radius)
	minCZ, maxCZ := gridCoord(pos.Z-radius), gridCoord(pos.Z+radius)
	for cz := minCZ; cz <= maxCZ; cz++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cz*GridCols+cx]...)
		}
	}
	slices.Sort(buf)
	return buf
}
