package physics

import (
	"errors"
	"math"
	"testing"

	"collision-sim/internal/material"
)

// newTestWorld returns a seeded default world, optionally adjusted by mutate.
func newTestWorld(t *testing.T, mutate func(*Settings)) *World {
	t.Helper()
	s := DefaultSettings()
	s.Seed = 42
	if mutate != nil {
		mutate(&s)
	}
	w, err := NewWorld(s)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func mustCircle(t *testing.T, w *World, x, y, r, vx, vy float64, m material.Material) Handle {
	t.Helper()
	h, err := w.CreateCircle(x, y, r, vx, vy, m)
	if err != nil {
		t.Fatalf("CreateCircle: %v", err)
	}
	return h
}

func mustRect(t *testing.T, w *World, x, y, width, height, vx, vy float64, m material.Material) Handle {
	t.Helper()
	h, err := w.CreateRectangle(x, y, width, height, vx, vy, m)
	if err != nil {
		t.Fatalf("CreateRectangle: %v", err)
	}
	return h
}

func TestMass(t *testing.T) {
	w := newTestWorld(t, func(s *Settings) {
		s.Materials[material.Iron].Density = 1
	})
	c := mustCircle(t, w, 400, 300, 10, 3, 4, material.Iron)
	r := mustRect(t, w, 100, 100, 20, 30, 0, 0, material.Iron)

	want := math.Pi * 100
	if got := w.Body(c).Mass; math.Abs(got-want) > 1e-9 {
		t.Errorf("circle mass = %v, want %v", got, want)
	}
	if got := w.Body(r).Mass; got != 600 {
		t.Errorf("rectangle mass = %v, want 600", got)
	}

	for i := 0; i < 50; i++ {
		w.Step(BruteForce)
	}
	w.SetVelocity(c, -1, 2)
	if got := w.Body(c).Mass; math.Abs(got-want) > 1e-9 {
		t.Errorf("circle mass after motion = %v, want %v", got, want)
	}
}

func TestCreateErrors(t *testing.T) {
	w := newTestWorld(t, nil)
	tests := []struct {
		name   string
		create func() (Handle, error)
		want   error
	}{
		{"zero_radius", func() (Handle, error) { return w.CreateCircle(0, 0, 0, 0, 0, material.Iron) }, ErrInvalidShape},
		{"negative_radius", func() (Handle, error) { return w.CreateCircle(0, 0, -1, 0, 0, material.Iron) }, ErrInvalidShape},
		{"nan_radius", func() (Handle, error) { return w.CreateCircle(0, 0, math.NaN(), 0, 0, material.Iron) }, ErrInvalidShape},
		{"inf_radius", func() (Handle, error) { return w.CreateCircle(0, 0, math.Inf(1), 0, 0, material.Iron) }, ErrInvalidShape},
		{"zero_width", func() (Handle, error) { return w.CreateRectangle(0, 0, 0, 5, 0, 0, material.Wood) }, ErrInvalidShape},
		{"negative_height", func() (Handle, error) { return w.CreateRectangle(0, 0, 5, -5, 0, 0, material.Wood) }, ErrInvalidShape},
		{"unknown_material", func() (Handle, error) { return w.CreateCircle(0, 0, 5, 0, 0, material.Material(7)) }, material.ErrUnknownMaterial},
		{"nan_position", func() (Handle, error) { return w.CreateRectangle(math.NaN(), 0, 5, 5, 0, 0, material.Gold) }, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.create()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if h != -1 {
				t.Errorf("handle = %d, want -1", h)
			}
		})
	}
	if w.Len() != 0 {
		t.Errorf("rejected bodies were registered: Len() = %d", w.Len())
	}
}

func TestHandlesAreStable(t *testing.T) {
	w := newTestWorld(t, nil)
	a := mustCircle(t, w, 10, 10, 5, 0, 0, material.Iron)
	b := mustRect(t, w, 50, 50, 5, 5, 0, 0, material.Wood)
	if a != 0 || b != 1 {
		t.Fatalf("handles = %d, %d; want 0, 1", a, b)
	}
	if v := w.Body(b); v.Kind != Rectangle || v.Material != material.Wood {
		t.Errorf("Body(b) = %+v", v)
	}
}

func TestBodyOutOfRangePanics(t *testing.T) {
	w := newTestWorld(t, nil)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown handle")
		}
	}()
	w.Body(3)
}

func TestAABBOf(t *testing.T) {
	w := newTestWorld(t, nil)
	c := mustCircle(t, w, 50, 60, 10, 0, 0, material.Iron)
	r := mustRect(t, w, 5, 6, 7, 8, 0, 0, material.Iron)

	box := AABBOf(&w.bodies[c])
	if box.X != 40 || box.Y != 50 || box.W != 20 || box.H != 20 {
		t.Errorf("circle AABB = %+v", box)
	}
	box = AABBOf(&w.bodies[r])
	if box.X != 5 || box.Y != 6 || box.W != 7 || box.H != 8 {
		t.Errorf("rect AABB = %+v", box)
	}

	w.bodies[c].Active = false
	if box := AABBOf(&w.bodies[c]); !box.Empty() {
		t.Errorf("inactive AABB = %+v, want empty", box)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero_width", func(s *Settings) { s.Width = 0 }},
		{"zero_cell", func(s *Settings) { s.CellSize = 0 }},
		{"inset_too_large", func(s *Settings) { s.RespawnInset = 400 }},
		{"negative_inset", func(s *Settings) { s.RespawnInset = -1 }},
		{"nan_inset", func(s *Settings) { s.RespawnInset = math.NaN() }},
		{"no_speeds", func(s *Settings) { s.RespawnSpeeds = nil }},
		{"zero_speed", func(s *Settings) { s.RespawnSpeeds = []float64{0, 3} }},
		{"bad_restitution", func(s *Settings) { s.Materials[material.Glass].Restitution = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if _, err := NewWorld(s); err == nil {
				t.Error("NewWorld accepted invalid settings")
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"brute": BruteForce, "Brute-Force": BruteForce, "grid": SpatialGrid, "aabb": SpatialGrid} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("quadtree"); err == nil {
		t.Error("ParseMode(quadtree) should fail")
	}
	if BruteForce.Toggle() != SpatialGrid || SpatialGrid.Toggle() != BruteForce {
		t.Error("Toggle does not alternate")
	}
}
