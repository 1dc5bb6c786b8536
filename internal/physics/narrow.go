package physics

import (
	"collision-sim/internal/geom"
	"collision-sim/internal/material"
)

type pairKind uint8

const (
	circleCircle pairKind = iota
	rectRect
	circleRect
	rectCircle
)

func kindOf(a, b *Body) pairKind {
	switch {
	case a.kind == Circle && b.kind == Circle:
		return circleCircle
	case a.kind == Rectangle && b.kind == Rectangle:
		return rectRect
	case a.kind == Circle:
		return circleRect
	default:
		return rectCircle
	}
}

// overlaps runs the exact test for the pair. Inactive bodies never overlap.
func overlaps(a, b *Body) bool {
	if !a.Active || !b.Active {
		return false
	}
	switch kindOf(a, b) {
	case circleCircle:
		return geom.CircleOverlap(a.circle(), b.circle())
	case rectRect:
		return geom.RectOverlap(a.rect(), b.rect())
	case circleRect:
		return geom.CircleRectOverlap(a.circle(), b.rect())
	default:
		return geom.CircleRectOverlap(b.circle(), a.rect())
	}
}

// respond applies the velocity/position response for a confirmed overlap.
func respond(a, b *Body) {
	switch kindOf(a, b) {
	case circleCircle:
		resolveCircles(a, b)
	case rectRect:
		resolveRects(a, b)
	case circleRect:
		resolveCircleRect(a, b)
	default:
		resolveCircleRect(b, a)
	}
}

// collide tests one pair and, on overlap, marks both bodies, responds, and breaks glass.
// It reports whether the pair overlapped.
func (w *World) collide(p Pair) bool {
	a, b := &w.bodies[p.A], &w.bodies[p.B]
	if !overlaps(a, b) {
		return false
	}
	a.Colliding = true
	b.Colliding = true
	respond(a, b)
	w.shatter(p.A)
	w.shatter(p.B)
	w.contacts = append(w.contacts, p)
	return true
}

// shatter deactivates a glass body that took part in a confirmed overlap.
func (w *World) shatter(h Handle) {
	b := &w.bodies[h]
	if b.material != material.Glass || !b.Active {
		return
	}
	b.Active = false
	w.emit(EventShattered, h)
}

func (w *World) detectBruteForce() {
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w.candidates++
			w.collide(Pair{A: Handle(i), B: Handle(j)})
		}
	}
}

func (w *World) detectGrid() {
	w.grid.Reset()
	for i := range w.bodies {
		if w.bodies[i].Active {
			w.grid.Insert(Handle(i), AABBOf(&w.bodies[i]))
		}
	}
	w.pairs = w.grid.Pairs(w.pairs[:0])
	for _, p := range w.pairs {
		w.candidates++
		w.collide(p)
	}
}
