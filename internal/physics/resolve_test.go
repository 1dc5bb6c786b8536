package physics

import (
	"math"
	"testing"

	"collision-sim/internal/material"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func elasticTable() material.Table {
	tbl := material.DefaultTable()
	for _, m := range material.All {
		tbl[m].Restitution = 1
	}
	return tbl
}

// Two iron circles closing head-on in an 800x600 world.
func TestHeadOnIronCircles(t *testing.T) {
	for _, mode := range []Mode{BruteForce, SpatialGrid} {
		t.Run(mode.String(), func(t *testing.T) {
			w := newTestWorld(t, nil)
			a := mustCircle(t, w, 395, 300, 10, 5, 0, material.Iron)
			b := mustCircle(t, w, 405, 300, 10, -5, 0, material.Iron)

			w.Step(mode)

			va, vb := w.Body(a), w.Body(b)
			if !va.Colliding || !vb.Colliding {
				t.Fatalf("colliding = %v, %v; want both true", va.Colliding, vb.Colliding)
			}
			if va.VX >= 0 || vb.VX <= 0 {
				t.Errorf("velocities after impact = %v, %v; want signs reversed", va.VX, vb.VX)
			}
			if !near(va.VX, -vb.VX) {
				t.Errorf("equal masses should leave symmetric velocities, got %v and %v", va.VX, vb.VX)
			}
			if va.VY != 0 || vb.VY != 0 {
				t.Errorf("head-on impact produced vertical velocity %v, %v", va.VY, vb.VY)
			}
			if d := vb.X - va.X; d < 20-eps {
				t.Errorf("circles still overlap after correction: distance %v", d)
			}
			if n := len(w.Contacts()); n != 1 {
				t.Errorf("contacts = %d, want 1", n)
			}
		})
	}
}

func TestElasticEqualMassKeepsRelativeSpeed(t *testing.T) {
	w := newTestWorld(t, func(s *Settings) { s.Materials = elasticTable() })
	mustCircle(t, w, 100, 100, 10, 2, 0.5, material.Wood)
	mustCircle(t, w, 115, 103, 10, -3, 0, material.Wood)
	a, b := &w.bodies[0], &w.bodies[1]

	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	nx, ny := dx/d, dy/d
	before := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
	momX := a.mass*a.VX + b.mass*b.VX
	momY := a.mass*a.VY + b.mass*b.VY

	resolveCircles(a, b)

	after := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
	if !near(math.Abs(after), math.Abs(before)) {
		t.Errorf("relative normal speed %v -> %v, want unchanged magnitude", before, after)
	}
	if after <= 0 {
		t.Errorf("bodies still approaching after impulse: vn = %v", after)
	}
	if !near(a.mass*a.VX+b.mass*b.VX, momX) || !near(a.mass*a.VY+b.mass*b.VY, momY) {
		t.Error("momentum not conserved")
	}
}

func TestSeparatingCirclesOnlyCorrected(t *testing.T) {
	w := newTestWorld(t, nil)
	mustCircle(t, w, 100, 100, 10, -1, 0, material.Iron)
	mustCircle(t, w, 110, 100, 10, 1, 0, material.Iron)
	a, b := &w.bodies[0], &w.bodies[1]

	resolveCircles(a, b)

	if a.VX != -1 || b.VX != 1 {
		t.Errorf("separating velocities changed: %v, %v", a.VX, b.VX)
	}
	if !near(a.X, 95) || !near(b.X, 115) {
		t.Errorf("positions = %v, %v; want 95, 115", a.X, b.X)
	}
}

func TestCoincidentCircles(t *testing.T) {
	w := newTestWorld(t, nil)
	mustCircle(t, w, 100, 100, 10, 0, 0, material.Iron)
	mustCircle(t, w, 100, 100, 10, 0, 0, material.Iron)
	a, b := &w.bodies[0], &w.bodies[1]

	resolveCircles(a, b)

	if !near(b.X-a.X, 20) || a.Y != b.Y {
		t.Errorf("coincident circles separated to %v,%v and %v,%v", a.X, a.Y, b.X, b.Y)
	}
}

func TestZeroMassIsImmovable(t *testing.T) {
	w := newTestWorld(t, nil)
	mustCircle(t, w, 100, 100, 10, 2, 0, material.Iron)
	mustCircle(t, w, 115, 100, 10, -2, 0, material.Iron)
	a, b := &w.bodies[0], &w.bodies[1]
	b.mass = 0

	resolveCircles(a, b)

	for _, v := range []float64{a.X, a.Y, a.VX, a.VY, b.X, b.Y, b.VX, b.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite state after zero-mass impact: %+v %+v", *a, *b)
		}
	}
	if b.X != 115 || b.VX != -2 {
		t.Errorf("immovable body changed: x=%v vx=%v", b.X, b.VX)
	}
	if !near(a.X, 95) {
		t.Errorf("movable body should take the whole correction, x=%v", a.X)
	}
	if a.VX >= 0 {
		t.Errorf("movable body should bounce back, vx=%v", a.VX)
	}

	a.mass = 0
	a.VX = 1
	resolveCircles(a, b)
	if a.VX != 1 || b.VX != -2 {
		t.Error("two immovable bodies should not respond")
	}
}

func TestRectRectResponse(t *testing.T) {
	tests := []struct {
		name             string
		avx, avy         float64
		bx, by           float64
		bvx, bvy         float64
		wantAVX, wantAVY float64
		wantBVX, wantBVY float64
	}{
		// X overlap 5, Y overlap 15: X is the collision axis.
		{"closing_x", 2, 1, 15, 5, -3, 4, -2.6, 1, 1.4, 4},
		// X overlap 15, Y overlap 5: Y is the collision axis.
		{"closing_y", 1, 2, 5, 15, 7, -3, 1, -2.6, 7, 1.4},
		{"same_direction", 2, 0, 15, 5, 1, 0, 2, 0, 1, 0},
		{"diverging", -2, 0, 15, 5, 3, 0, -2, 0, 3, 0},
		{"one_at_rest", 2, 0, 15, 5, 0, 0, 2, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			mustRect(t, w, 0, 0, 20, 20, tt.avx, tt.avy, material.Iron)
			mustRect(t, w, tt.bx, tt.by, 20, 20, tt.bvx, tt.bvy, material.Iron)
			a, b := &w.bodies[0], &w.bodies[1]

			resolveRects(a, b)

			if !near(a.VX, tt.wantAVX) || !near(a.VY, tt.wantAVY) {
				t.Errorf("a velocity = (%v, %v), want (%v, %v)", a.VX, a.VY, tt.wantAVX, tt.wantAVY)
			}
			if !near(b.VX, tt.wantBVX) || !near(b.VY, tt.wantBVY) {
				t.Errorf("b velocity = (%v, %v), want (%v, %v)", b.VX, b.VY, tt.wantBVX, tt.wantBVY)
			}
			if a.X != 0 || a.Y != 0 || b.X != tt.bx || b.Y != tt.by {
				t.Error("rectangle response must not move bodies")
			}
		})
	}
}

func TestExchange1DImmovable(t *testing.T) {
	v1, v2 := exchange1D(2, -3, 10, 0, 5, 0.5)
	if v1 != 2 || !near(v2, 5.5) {
		t.Errorf("exchange1D with fixed body 1 = %v, %v; want 2, 5.5", v1, v2)
	}
	v1, v2 = exchange1D(2, -3, 10, 5, 0, 0.5)
	if !near(v1, -7) || v2 != -3 {
		t.Errorf("exchange1D with fixed body 2 = %v, %v; want -7, -3", v1, v2)
	}
	v1, v2 = exchange1D(2, -3, 10, 0, 0, 0.5)
	if v1 != 2 || v2 != -3 {
		t.Errorf("exchange1D with both fixed = %v, %v", v1, v2)
	}
}

func TestCircleRectReflects(t *testing.T) {
	for _, circleFirst := range []bool{true, false} {
		w := newTestWorld(t, nil)
		var c, r Handle
		if circleFirst {
			c = mustCircle(t, w, 25, 10, 10, 3, -2, material.Rubber)
			r = mustRect(t, w, 0, 0, 20, 20, -1, 4, material.Wood)
		} else {
			r = mustRect(t, w, 0, 0, 20, 20, -1, 4, material.Wood)
			c = mustCircle(t, w, 25, 10, 10, 3, -2, material.Rubber)
		}
		pair := Pair{A: 0, B: 1}
		if !w.collide(pair) {
			t.Fatalf("circleFirst=%v: expected overlap", circleFirst)
		}

		tbl := material.DefaultTable()
		ec, er := tbl[material.Rubber].Restitution, tbl[material.Wood].Restitution
		cb, rb := w.bodies[c], w.bodies[r]
		if !near(cb.VX, -3*ec) || !near(cb.VY, 2*ec) {
			t.Errorf("circleFirst=%v: circle velocity = (%v, %v)", circleFirst, cb.VX, cb.VY)
		}
		if !near(rb.VX, 1*er) || !near(rb.VY, -4*er) {
			t.Errorf("circleFirst=%v: rect velocity = (%v, %v)", circleFirst, rb.VX, rb.VY)
		}
		if !cb.Colliding || !rb.Colliding {
			t.Errorf("circleFirst=%v: both bodies should be colliding", circleFirst)
		}
	}
}

func TestInactiveNeverOverlaps(t *testing.T) {
	w := newTestWorld(t, nil)
	mustCircle(t, w, 100, 100, 10, 0, 0, material.Iron)
	mustCircle(t, w, 105, 100, 10, 0, 0, material.Iron)
	mustRect(t, w, 95, 95, 10, 10, 0, 0, material.Iron)
	w.bodies[0].Active = false

	if overlaps(&w.bodies[0], &w.bodies[1]) || overlaps(&w.bodies[1], &w.bodies[0]) {
		t.Error("inactive circle overlapped")
	}
	if overlaps(&w.bodies[0], &w.bodies[2]) || overlaps(&w.bodies[2], &w.bodies[0]) {
		t.Error("inactive circle overlapped a rectangle")
	}
	if !overlaps(&w.bodies[1], &w.bodies[2]) {
		t.Error("active circle and rectangle should overlap")
	}
}
