package physics

import (
	"math"

	"collision-sim/internal/geom"
)

// DefaultCellSize is large enough that most bodies fit in one cell and small enough
// to split a few hundred bodies into useful buckets.
const DefaultCellSize = 150

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Pair is a candidate or confirmed body pair with A < B.
type Pair struct {
	A, B Handle
}

// Grid buckets bodies by the cell containing the minimum corner of their AABB.
// A body straddling a cell boundary lives in exactly one cell, so two overlapping
// bodies whose corners fall in different cells are never paired.
//
// Buckets are reused between ticks (truncated, not freed). Cells are visited in the
// order they were first filled so pair order does not depend on map iteration.
type Grid struct {
	cellSize float64
	buckets  map[Cell][]Handle
	order    []Cell
}

// NewGrid returns an empty grid. cellSize must be positive.
func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: cellSize,
		buckets:  make(map[Cell][]Handle),
	}
}

// CellSize returns the edge length of a cell in world units.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Reset empties every bucket while keeping its backing memory.
func (g *Grid) Reset() {
	for _, c := range g.order {
		g.buckets[c] = g.buckets[c][:0]
	}
	g.order = g.order[:0]
}

// CellOf returns the cell of the box's minimum corner.
func (g *Grid) CellOf(box geom.AABB) Cell {
	return Cell{
		X: int(math.Floor(box.X / g.cellSize)),
		Y: int(math.Floor(box.Y / g.cellSize)),
	}
}

// Insert adds h under the cell of box. Empty boxes are ignored.
func (g *Grid) Insert(h Handle, box geom.AABB) {
	if box.Empty() {
		return
	}
	c := g.CellOf(box)
	bucket := g.buckets[c]
	if len(bucket) == 0 {
		g.order = append(g.order, c)
	}
	g.buckets[c] = append(bucket, h)
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	return len(g.order)
}

// Pairs appends every pair that shares a cell to dst and returns it.
func (g *Grid) Pairs(dst []Pair) []Pair {
	for _, c := range g.order {
		bucket := g.buckets[c]
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				dst = append(dst, Pair{A: bucket[i], B: bucket[j]})
			}
		}
	}
	return dst
}

// CandidatePairs builds a grid over the active bodies and returns the same-cell pairs.
func CandidatePairs(bodies []Body, cellSize float64) []Pair {
	g := NewGrid(cellSize)
	for i := range bodies {
		if bodies[i].Active {
			g.Insert(Handle(i), AABBOf(&bodies[i]))
		}
	}
	return g.Pairs(nil)
}
