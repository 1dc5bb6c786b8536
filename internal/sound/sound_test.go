package sound

import (
	"math"
	"testing"
	"time"

	"collision-sim/internal/material"
)

func TestClickDecays(t *testing.T) {
	g := NewClick(sampleRate, 440)
	buf := make([][2]float64, sampleRate.N(100*time.Millisecond))
	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	peak := func(s [][2]float64) float64 {
		p := 0.0
		for _, v := range s {
			p = math.Max(p, math.Abs(v[0]))
			if v[0] != v[1] {
				t.Fatal("channels differ")
			}
		}
		return p
	}
	head := peak(buf[:len(buf)/10])
	tail := peak(buf[len(buf)*9/10:])
	if head <= 0 || head > 0.25 || tail >= head/10 {
		t.Errorf("peak head %v tail %v, want a fast decay from at most 0.25", head, tail)
	}
}

func TestCrackleDeterministic(t *testing.T) {
	a := make([][2]float64, 512)
	b := make([][2]float64, 512)
	NewCrackle(sampleRate, 7).Stream(a)
	NewCrackle(sampleRate, 7).Stream(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
		if math.Abs(a[i][0]) > 0.5 {
			t.Fatalf("sample %d = %v, out of range", i, a[i][0])
		}
	}
}

func TestPitchPerMaterial(t *testing.T) {
	seen := map[float64]bool{}
	for _, m := range material.All {
		p := Pitch(m)
		if p <= 0 || seen[p] {
			t.Errorf("Pitch(%s) = %v, want a distinct positive pitch", m, p)
		}
		seen[p] = true
	}
}

func TestPlayWithoutSpeakerIsNoop(t *testing.T) {
	m := NewManager()
	m.PlayShatter()
	m.PlayHit(material.Glass)
	m.Close()
	if m.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Initialize", m.mixer.Len())
	}
}
