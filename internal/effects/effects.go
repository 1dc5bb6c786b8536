package effects

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// Duration of a shatter animation in seconds.
	Duration = 0.6
	// Shards is the number of fragments thrown out by a shatter.
	Shards = 8
	// spread is how far the ring grows past the body size.
	spread = 2.5
)

// Shatter is a fading, expanding ring with fragments flying outwards, left where a glass body broke.
type Shatter struct {
	X, Y   float32
	Color  color.RGBA
	Radius float32
	Alpha  float32 // 1 opaque, 0 gone

	radius *gween.Tween
	alpha  *gween.Tween
	done   bool
}

// Shard is a fragment position for the current frame.
type Shard struct {
	X, Y float32
	Size float32
}

// Shards returns the fragment positions around the current ring.
func (s *Shatter) Shards() [Shards]Shard {
	var out [Shards]Shard
	size := 2 + 3*s.Alpha
	for i := range out {
		angle := 2 * math32.Pi * float32(i) / Shards
		// alternate fragments lag a little behind the ring
		r := s.Radius
		if i%2 == 1 {
			r *= 0.7
		}
		out[i] = Shard{X: s.X + r*math32.Cos(angle), Y: s.Y + r*math32.Sin(angle), Size: size}
	}
	return out
}

// Done reports whether the animation finished.
func (s *Shatter) Done() bool {
	return s.done
}

func (s *Shatter) update(dt float32) {
	r, rDone := s.radius.Update(dt)
	a, aDone := s.alpha.Update(dt)
	s.Radius, s.Alpha = r, a
	s.done = rDone && aDone
}

// Set holds the running animations. It is driven from the draw loop with the frame time.
type Set struct {
	items []*Shatter
}

// Spawn starts a shatter at (x, y) for a body whose larger half-extent is size.
func (s *Set) Spawn(x, y, size float32, c color.RGBA) *Shatter {
	size = math32.Max(size, 4)
	sh := &Shatter{
		X: x, Y: y, Color: c, Radius: size, Alpha: 1,
		radius: gween.New(size, size*spread, Duration, ease.OutCubic),
		alpha:  gween.New(1, 0, Duration, ease.InQuad),
	}
	s.items = append(s.items, sh)
	return sh
}

// Update advances every animation by dt seconds and drops finished ones.
func (s *Set) Update(dt float32) {
	kept := s.items[:0]
	for _, sh := range s.items {
		sh.update(dt)
		if !sh.done {
			kept = append(kept, sh)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept
}

// Active returns the running animations in spawn order.
func (s *Set) Active() []*Shatter {
	return s.items
}

// Clear drops every animation.
func (s *Set) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
