package scenario

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"collision-sim/internal/geom"
	"collision-sim/internal/material"
	"collision-sim/internal/physics"
)

// Spec describes one body to create. Radius is used for circles, W and H for rectangles.
type Spec struct {
	Shape    physics.ShapeKind
	X, Y     float64
	Radius   float64
	W, H     float64
	VX, VY   float64
	Material material.Material
}

func (s Spec) bounds() geom.AABB {
	if s.Shape == physics.Circle {
		return geom.CircleBounds(geom.Circle{X: s.X, Y: s.Y, Radius: s.Radius})
	}
	return geom.AABB{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// ParseShape accepts "circle" and "rect"/"rectangle".
func ParseShape(s string) (physics.ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle":
		return physics.Circle, nil
	case "rect", "rectangle":
		return physics.Rectangle, nil
	}
	return 0, fmt.Errorf("unknown shape %q (want circle or rect)", s)
}

func circle(x, y, r, vx, vy float64, m material.Material) Spec {
	return Spec{Shape: physics.Circle, X: x, Y: y, Radius: r, VX: vx, VY: vy, Material: m}
}

func rect(x, y, w, h, vx, vy float64, m material.Material) Spec {
	return Spec{Shape: physics.Rectangle, X: x, Y: y, W: w, H: h, VX: vx, VY: vy, Material: m}
}

// Default is the nine-body demo layout for an 800x600 world, including two glass rectangles.
func Default() []Spec {
	return []Spec{
		circle(200, 200, 40, 3, 2, material.Iron),
		circle(500, 400, 30, -4, 2, material.Rubber),
		rect(300, 100, 100, 70, 3, 2, material.Wood),
		rect(120, 350, 120, 80, -3, -2, material.Glass),
		circle(650, 150, 25, -2, 4, material.Gold),
		rect(50, 500, 80, 50, 5, -1, material.Iron),
		circle(700, 550, 50, -3, -3, material.Wood),
		rect(450, 250, 90, 60, 2, -4, material.Rubber),
		rect(700, 50, 70, 40, -4, 4, material.Glass),
	}
}

// RandomOptions controls Random. Sizes are radii for circles and edge lengths for rectangles.
// Seed == 0 uses a time-based seed.
type RandomOptions struct {
	Count         int
	Width, Height float64
	MinSize       float64
	MaxSize       float64
	// MaxSpeed bounds each velocity component; speeds are whole numbers in [1, MaxSpeed].
	MaxSpeed  int
	Materials []material.Material
	Seed      int64
}

// DefaultRandomOptions returns 200 bodies in an 800x600 world.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{
		Count:     200,
		Width:     800,
		Height:    600,
		MinSize:   4,
		MaxSize:   20,
		MaxSpeed:  5,
		Materials: material.All[:],
	}
}

// Random returns opts.Count bodies of random shape, size, material and velocity placed fully inside the world.
// Out-of-range options fall back to the defaults.
func Random(opts RandomOptions) []Spec {
	def := DefaultRandomOptions()
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.MinSize <= 0 {
		opts.MinSize = def.MinSize
	}
	if opts.MaxSize < opts.MinSize {
		opts.MaxSize = opts.MinSize
	}
	if opts.MaxSpeed <= 0 {
		opts.MaxSpeed = def.MaxSpeed
	}
	if len(opts.Materials) == 0 {
		opts.Materials = def.Materials
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5eed))

	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	speed := func() float64 {
		v := float64(1 + rng.IntN(opts.MaxSpeed))
		if rng.IntN(2) == 0 {
			return -v
		}
		return v
	}

	specs := make([]Spec, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		m := opts.Materials[rng.IntN(len(opts.Materials))]
		if rng.IntN(2) == 0 {
			r := between(opts.MinSize, opts.MaxSize)
			specs = append(specs, circle(between(r, opts.Width-r), between(r, opts.Height-r), r, speed(), speed(), m))
			continue
		}
		w := between(opts.MinSize, opts.MaxSize) * 2
		h := between(opts.MinSize, opts.MaxSize) * 2
		specs = append(specs, rect(between(0, opts.Width-w), between(0, opts.Height-h), w, h, speed(), speed(), m))
	}
	return specs
}

// Populate creates every spec in w, in order, and stops at the first invalid one.
func Populate(w *physics.World, specs []Spec) ([]physics.Handle, error) {
	handles := make([]physics.Handle, 0, len(specs))
	for i, s := range specs {
		var (
			h   physics.Handle
			err error
		)
		switch s.Shape {
		case physics.Circle:
			h, err = w.CreateCircle(s.X, s.Y, s.Radius, s.VX, s.VY, s.Material)
		case physics.Rectangle:
			h, err = w.CreateRectangle(s.X, s.Y, s.W, s.H, s.VX, s.VY, s.Material)
		default:
			err = fmt.Errorf("unknown shape %v", s.Shape)
		}
		if err != nil {
			return handles, fmt.Errorf("body %d: %w", i, err)
		}
		handles = append(handles, h)
	}
	return handles, nil
}
