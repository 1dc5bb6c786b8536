package physics

import (
	"errors"
	"fmt"
	"math"

	"collision-sim/internal/geom"
	"collision-sim/internal/material"
)

var (
	// ErrInvalidShape is returned when a radius, width or height is not a positive finite number.
	ErrInvalidShape = errors.New("invalid shape dimensions")
	// ErrNonFinite is returned when a position or velocity is NaN or infinite.
	ErrNonFinite = errors.New("non-finite position or velocity")
)

// ShapeKind is the discriminant of the body shape union.
type ShapeKind uint8

const (
	Circle ShapeKind = iota
	Rectangle
)

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Rectangle:
		return "rectangle"
	}
	return fmt.Sprintf("shape(%d)", uint8(k))
}

// Handle is a body's stable index in the world registry.
type Handle int

// Body is a 2D rigid body: a circle (X, Y is the centre) or an axis-aligned rectangle (X, Y is the top-left corner).
// Shape, material and mass are fixed at construction; only kinematics and flags change.
type Body struct {
	X, Y   float64
	VX, VY float64 // displacement per tick

	// Active is false after destruction until the lifecycle manager respawns the body.
	Active bool
	// Colliding is set when any overlap touched the body this tick. Presentation only.
	Colliding bool

	kind     ShapeKind
	radius   float64
	w, h     float64
	material material.Material
	props    material.Props
	mass     float64
}

func newCircle(x, y, r, vx, vy float64, m material.Material, props material.Props) Body {
	return Body{
		X: x, Y: y, VX: vx, VY: vy,
		Active:   true,
		kind:     Circle,
		radius:   r,
		material: m,
		props:    props,
		mass:     props.Density * math.Pi * r * r,
	}
}

func newRectangle(x, y, w, h, vx, vy float64, m material.Material, props material.Props) Body {
	return Body{
		X: x, Y: y, VX: vx, VY: vy,
		Active:   true,
		kind:     Rectangle,
		w:        w,
		h:        h,
		material: m,
		props:    props,
		mass:     props.Density * w * h,
	}
}

func (b *Body) Kind() ShapeKind             { return b.kind }
func (b *Body) Radius() float64             { return b.radius }
func (b *Body) Size() (w, h float64)        { return b.w, b.h }
func (b *Body) Material() material.Material { return b.material }
func (b *Body) Restitution() float64        { return b.props.Restitution }
func (b *Body) Mass() float64               { return b.mass }

// invMass is 0 for a body without positive mass, which the resolver treats as immovable.
func (b *Body) invMass() float64 {
	if !(b.mass > 0) {
		return 0
	}
	return 1 / b.mass
}

func (b *Body) circle() geom.Circle {
	return geom.Circle{X: b.X, Y: b.Y, Radius: b.radius}
}

func (b *Body) rect() geom.AABB {
	return geom.AABB{X: b.X, Y: b.Y, W: b.w, H: b.h}
}

// AABBOf returns the bounding box of an active body and the empty box for an inactive one.
func AABBOf(b *Body) geom.AABB {
	if !b.Active {
		return geom.AABB{}
	}
	if b.kind == Circle {
		return geom.CircleBounds(b.circle())
	}
	return b.rect()
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
