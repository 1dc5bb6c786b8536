package physics

import (
	"fmt"
	"image/color"

	"collision-sim/internal/geom"
	"collision-sim/internal/material"
)

// BodyView is a read-only copy of one body for renderers and reporters.
type BodyView struct {
	Handle    Handle
	Kind      ShapeKind
	X, Y      float64
	VX, VY    float64
	Radius    float64 // circles only
	W, H      float64 // rectangles only
	Material  material.Material
	Color     color.RGBA
	Mass      float64
	Active    bool
	Colliding bool
}

// Bounds returns the view's bounding box regardless of Active.
func (v BodyView) Bounds() geom.AABB {
	if v.Kind == Circle {
		return geom.CircleBounds(geom.Circle{X: v.X, Y: v.Y, Radius: v.Radius})
	}
	return geom.AABB{X: v.X, Y: v.Y, W: v.W, H: v.H}
}

func (b *Body) view(h Handle) BodyView {
	return BodyView{
		Handle:    h,
		Kind:      b.kind,
		X:         b.X,
		Y:         b.Y,
		VX:        b.VX,
		VY:        b.VY,
		Radius:    b.radius,
		W:         b.w,
		H:         b.h,
		Material:  b.material,
		Color:     b.props.Color,
		Mass:      b.mass,
		Active:    b.Active,
		Colliding: b.Colliding,
	}
}

// Body returns a view of one body. It panics on an unknown handle.
func (w *World) Body(h Handle) BodyView {
	return w.at(h).view(h)
}

// Snapshot returns views of every body in handle order. The slice is freshly allocated.
func (w *World) Snapshot() []BodyView {
	out := make([]BodyView, len(w.bodies))
	for i := range w.bodies {
		out[i] = w.bodies[i].view(Handle(i))
	}
	return out
}

// Counts is the per-material tally handed to the statistics reporter.
type Counts struct {
	Active    int
	Colliding int
}

// AggregateByMaterial counts active and colliding bodies per material.
// Every material has an entry, zero or not.
func (w *World) AggregateByMaterial() map[material.Material]Counts {
	out := make(map[material.Material]Counts, len(material.All))
	for _, m := range material.All {
		out[m] = Counts{}
	}
	for i := range w.bodies {
		b := &w.bodies[i]
		c := out[b.material]
		if b.Active {
			c.Active++
		}
		if b.Colliding {
			c.Colliding++
		}
		out[b.material] = c
	}
	return out
}

// EventKind classifies lifecycle events.
type EventKind uint8

const (
	// EventShattered: a glass body was destroyed by a confirmed overlap.
	EventShattered EventKind = iota
	// EventRespawned: an inactive body was given a new position and velocity.
	EventRespawned
)

func (k EventKind) String() string {
	switch k {
	case EventShattered:
		return "shattered"
	case EventRespawned:
		return "respawned"
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event records a lifecycle change during a step. X, Y is the body position when it happened.
type Event struct {
	Tick     uint64
	Kind     EventKind
	Body     Handle
	Material material.Material
	X, Y     float64
}

func (e Event) String() string {
	return fmt.Sprintf("tick %d: %s body %d %s at (%.0f, %.0f)", e.Tick, e.Material, e.Body, e.Kind, e.X, e.Y)
}
