package geom

import "math"

// AABB is an axis-aligned box with its minimum corner at (X, Y). Y grows downward,
// so Top is the smaller Y value, matching screen coordinates.
type AABB struct {
	X, Y float64
	W, H float64
}

// Circle is a centre and radius.
type Circle struct {
	X, Y   float64
	Radius float64
}

func (b AABB) Left() float64   { return b.X }
func (b AABB) Right() float64  { return b.X + b.W }
func (b AABB) Top() float64    { return b.Y }
func (b AABB) Bottom() float64 { return b.Y + b.H }

// Center returns the midpoint of the box.
func (b AABB) Center() (x, y float64) {
	return b.X + b.W*0.5, b.Y + b.H*0.5
}

// Empty reports whether the box is the zero box used for bodies that take no part in the simulation.
func (b AABB) Empty() bool {
	return b == AABB{}
}

// CircleBounds returns the box enclosing c: (x-r, y-r, 2r, 2r).
func CircleBounds(c Circle) AABB {
	return AABB{X: c.X - c.Radius, Y: c.Y - c.Radius, W: 2 * c.Radius, H: 2 * c.Radius}
}

// CircleOverlap reports whether the centres are closer than the sum of the radii.
// Touching circles (distance == sum) do not overlap.
func CircleOverlap(a, b Circle) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) < a.Radius+b.Radius
}

// RectOverlap is the standard AABB test. Shared edges count as overlap.
func RectOverlap(a, b AABB) bool {
	return !(a.Right() < b.Left() || a.Left() > b.Right() || a.Bottom() < b.Top() || a.Top() > b.Bottom())
}

// CircleRectOverlap clamps the circle centre into r and compares the squared distance
// to the closest point with the squared radius. Zero width or height is a valid segment or point.
func CircleRectOverlap(c Circle, r AABB) bool {
	px, py := ClosestPoint(r, c.X, c.Y)
	dx := c.X - px
	dy := c.Y - py
	return dx*dx+dy*dy < c.Radius*c.Radius
}

// ClosestPoint returns the point on or inside b nearest to (x, y).
func ClosestPoint(b AABB, x, y float64) (px, py float64) {
	return clamp(x, b.Left(), b.Right()), clamp(y, b.Top(), b.Bottom())
}

// OverlapExtents returns how far a and b overlap along X and Y. Negative values mean a gap on that axis.
func OverlapExtents(a, b AABB) (ox, oy float64) {
	ox = math.Min(a.Right(), b.Right()) - math.Max(a.Left(), b.Left())
	oy = math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
	return ox, oy
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
