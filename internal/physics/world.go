package physics

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"collision-sim/internal/material"
)

// Mode selects the detection strategy for a step.
type Mode uint8

const (
	// BruteForce tests every pair, n(n-1)/2 tests per tick.
	BruteForce Mode = iota
	// SpatialGrid tests only pairs sharing a grid cell.
	SpatialGrid
)

func (m Mode) String() string {
	switch m {
	case BruteForce:
		return "brute-force"
	case SpatialGrid:
		return "spatial-grid"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == BruteForce {
		return SpatialGrid
	}
	return BruteForce
}

// ParseMode accepts "brute", "brute-force", "grid", "spatial-grid" and "aabb".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brute", "brute-force", "bruteforce":
		return BruteForce, nil
	case "grid", "spatial-grid", "spatialgrid", "aabb":
		return SpatialGrid, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want brute or grid)", s)
}

// Settings are the world constants. All are fixed for the life of a World.
type Settings struct {
	Width, Height float64
	CellSize      float64
	RespawnInset  float64
	RespawnSpeeds []float64
	Materials     material.Table
	// Seed drives respawn randomness. 0 uses a time-based seed.
	Seed int64
}

// DefaultSettings returns an 800x600 world with 150-unit cells.
func DefaultSettings() Settings {
	return Settings{
		Width:         800,
		Height:        600,
		CellSize:      DefaultCellSize,
		RespawnInset:  DefaultRespawnInset,
		RespawnSpeeds: slices.Clone(DefaultRespawnSpeeds),
		Materials:     material.DefaultTable(),
	}
}

// Validate reports the first setting that cannot produce a working world.
func (s Settings) Validate() error {
	if !validDimension(s.Width) || !validDimension(s.Height) {
		return fmt.Errorf("world size must be positive, got %vx%v", s.Width, s.Height)
	}
	if !validDimension(s.CellSize) {
		return fmt.Errorf("cell size must be positive, got %v", s.CellSize)
	}
	if !(s.RespawnInset >= 0) || 2*s.RespawnInset > s.Width || 2*s.RespawnInset > s.Height {
		return fmt.Errorf("respawn inset %v does not fit a %vx%v world", s.RespawnInset, s.Width, s.Height)
	}
	if len(s.RespawnSpeeds) == 0 {
		return errors.New("respawn speed set is empty")
	}
	for _, v := range s.RespawnSpeeds {
		if !validDimension(v) {
			return fmt.Errorf("respawn speed must be positive, got %v", v)
		}
	}
	return s.Materials.Validate()
}

// World is the body registry and the per-tick pipeline. It is not safe for concurrent use;
// readers take a Snapshot after Step returns.
type World struct {
	settings Settings
	bodies   []Body
	grid     *Grid
	respawn  *Respawner

	tick       uint64
	pairs      []Pair
	contacts   []Pair
	events     []Event
	candidates int
}

// NewWorld returns an empty world, or an error if s is invalid.
func NewWorld(s Settings) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.RespawnSpeeds = slices.Clone(s.RespawnSpeeds)
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	return &World{
		settings: s,
		grid:     NewGrid(s.CellSize),
		respawn:  NewRespawner(s.Width, s.Height, s.RespawnInset, s.RespawnSpeeds, rng),
	}, nil
}

// Settings returns the constants the world was built with.
func (w *World) Settings() Settings {
	s := w.settings
	s.RespawnSpeeds = slices.Clone(s.RespawnSpeeds)
	return s
}

// CreateCircle adds a circle centred at (x, y) and returns its handle.
func (w *World) CreateCircle(x, y, radius, vx, vy float64, m material.Material) (Handle, error) {
	if !validDimension(radius) {
		return -1, fmt.Errorf("circle radius %v: %w", radius, ErrInvalidShape)
	}
	props, err := w.lookup(x, y, vx, vy, m)
	if err != nil {
		return -1, err
	}
	w.bodies = append(w.bodies, newCircle(x, y, radius, vx, vy, m, props))
	return Handle(len(w.bodies) - 1), nil
}

// CreateRectangle adds a w by h rectangle with its top-left corner at (x, y) and returns its handle.
func (w *World) CreateRectangle(x, y, width, height, vx, vy float64, m material.Material) (Handle, error) {
	if !validDimension(width) || !validDimension(height) {
		return -1, fmt.Errorf("rectangle size %vx%v: %w", width, height, ErrInvalidShape)
	}
	props, err := w.lookup(x, y, vx, vy, m)
	if err != nil {
		return -1, err
	}
	w.bodies = append(w.bodies, newRectangle(x, y, width, height, vx, vy, m, props))
	return Handle(len(w.bodies) - 1), nil
}

func (w *World) lookup(x, y, vx, vy float64, m material.Material) (material.Props, error) {
	if !finite(x, y, vx, vy) {
		return material.Props{}, ErrNonFinite
	}
	return w.settings.Materials.Lookup(m)
}

// Len returns the number of registered bodies, active or not.
func (w *World) Len() int {
	return len(w.bodies)
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances one tick: reset flags, move, respawn, then detect and respond in mode.
func (w *World) Step(mode Mode) {
	if mode != BruteForce && mode != SpatialGrid {
		panic(fmt.Sprintf("physics: step with %v", mode))
	}
	w.contacts = w.contacts[:0]
	w.events = w.events[:0]
	w.candidates = 0
	w.tick++

	for i := range w.bodies {
		w.bodies[i].Colliding = false
	}
	w.integrate()
	w.respawn.Recover(w.bodies, func(h Handle) { w.emit(EventRespawned, h) })

	if mode == SpatialGrid {
		w.detectGrid()
	} else {
		w.detectBruteForce()
	}
}

// integrate moves active bodies by one tick's velocity and flips the velocity component
// on any axis where the position left [0, extent]. Positions are not clamped.
func (w *World) integrate() {
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Active {
			continue
		}
		b.X += b.VX
		b.Y += b.VY
		if b.X < 0 || b.X > w.settings.Width {
			b.VX = -b.VX
		}
		if b.Y < 0 || b.Y > w.settings.Height {
			b.VY = -b.VY
		}
	}
}

// Contacts returns the pairs that overlapped during the last step, in detection order.
func (w *World) Contacts() []Pair {
	return slices.Clone(w.contacts)
}

// Candidates returns how many pairs the last step ran the exact test on.
func (w *World) Candidates() int {
	return w.candidates
}

// Events returns the shatter and respawn events of the last step.
func (w *World) Events() []Event {
	return slices.Clone(w.events)
}

// SetVelocity overwrites a body's velocity. It panics on an unknown handle.
func (w *World) SetVelocity(h Handle, vx, vy float64) {
	b := w.at(h)
	b.VX, b.VY = vx, vy
}

func (w *World) at(h Handle) *Body {
	if h < 0 || int(h) >= len(w.bodies) {
		panic(fmt.Sprintf("physics: handle %d out of range [0,%d)", h, len(w.bodies)))
	}
	return &w.bodies[h]
}

func (w *World) emit(kind EventKind, h Handle) {
	b := &w.bodies[h]
	w.events = append(w.events, Event{
		Tick:     w.tick,
		Kind:     kind,
		Body:     h,
		Material: b.material,
		X:        b.X,
		Y:        b.Y,
	})
}
