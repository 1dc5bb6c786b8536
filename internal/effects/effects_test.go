package effects

import (
	"image/color"
	"math"
	"testing"
)

func TestShatterExpandsAndFades(t *testing.T) {
	var s Set
	sh := s.Spawn(100, 50, 10, color.RGBA{0, 255, 255, 255})
	if sh.Radius != 10 || sh.Alpha != 1 {
		t.Fatalf("initial ring = %v, alpha %v", sh.Radius, sh.Alpha)
	}

	s.Update(Duration / 2)
	if sh.Radius <= 10 || sh.Radius >= 25 {
		t.Errorf("half-way radius = %v, want between 10 and 25", sh.Radius)
	}
	if sh.Alpha <= 0 || sh.Alpha >= 1 {
		t.Errorf("half-way alpha = %v", sh.Alpha)
	}
	if len(s.Active()) != 1 {
		t.Fatalf("active = %d, want 1", len(s.Active()))
	}

	s.Update(Duration)
	if !sh.Done() || len(s.Active()) != 0 {
		t.Errorf("finished effect still active: done=%v, active=%d", sh.Done(), len(s.Active()))
	}
	if math.Abs(float64(sh.Radius-25)) > 1e-4 || sh.Alpha != 0 {
		t.Errorf("final ring = %v, alpha %v", sh.Radius, sh.Alpha)
	}
}

func TestShardsSurroundCentre(t *testing.T) {
	var s Set
	sh := s.Spawn(0, 0, 8, color.RGBA{})
	shards := sh.Shards()
	var sx, sy float64
	for i, p := range shards {
		d := math.Hypot(float64(p.X), float64(p.Y))
		want := 8.0
		if i%2 == 1 {
			want = 5.6
		}
		if math.Abs(d-want) > 1e-4 {
			t.Errorf("shard %d at distance %v, want %v", i, d, want)
		}
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	// opposite shards are the same distance out, so the ring is centred
	if math.Abs(sx) > 1e-3 || math.Abs(sy) > 1e-3 {
		t.Errorf("shards centred at (%v, %v)", sx, sy)
	}
}

func TestSpawnMinimumSizeAndClear(t *testing.T) {
	var s Set
	if sh := s.Spawn(0, 0, 0, color.RGBA{}); sh.Radius != 4 {
		t.Errorf("radius = %v, want the 4px minimum", sh.Radius)
	}
	s.Spawn(1, 1, 5, color.RGBA{})
	s.Clear()
	if len(s.Active()) != 0 {
		t.Error("Clear left animations running")
	}
}
