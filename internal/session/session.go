package session

import (
	"fmt"

	"collision-sim/internal/logger"
	"collision-sim/internal/physics"
	"collision-sim/internal/scenario"
)

// Session owns a world plus the presentation state the front ends toggle: the active
// detection mode and whether stepping is paused. It is driven from a single goroutine.
type Session struct {
	settings physics.Settings
	initial  []scenario.Spec
	log      *logger.Logger

	World  *physics.World
	Mode   physics.Mode
	Paused bool
}

// New builds a world from settings and populates it with specs. log may be nil.
func New(settings physics.Settings, mode physics.Mode, specs []scenario.Spec, log *logger.Logger) (*Session, error) {
	s := &Session{
		settings: settings,
		initial:  append([]scenario.Spec(nil), specs...),
		log:      log,
		Mode:     mode,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	w, err := physics.NewWorld(s.settings)
	if err != nil {
		return err
	}
	if _, err := scenario.Populate(w, s.initial); err != nil {
		return err
	}
	s.World = w
	return nil
}

// Update advances the world one tick in the current mode and returns the logged events.
// It does nothing while paused.
func (s *Session) Update() []physics.Event {
	if s.Paused {
		return nil
	}
	s.World.Step(s.Mode)
	return s.Drain()
}

// ToggleMode switches between brute force and the spatial grid.
func (s *Session) ToggleMode() physics.Mode {
	s.SetMode(s.Mode.Toggle())
	return s.Mode
}

func (s *Session) SetMode(m physics.Mode) {
	if m == s.Mode {
		return
	}
	s.Mode = m
	s.logf("mode %s", m)
}

// Pause flips the paused flag and returns the new value.
func (s *Session) Pause() bool {
	s.Paused = !s.Paused
	if s.Paused {
		s.logf("paused at tick %d", s.World.Tick())
	} else {
		s.logf("resumed at tick %d", s.World.Tick())
	}
	return s.Paused
}

// Reset rebuilds the world from the initial layout. Bodies added since New are dropped.
func (s *Session) Reset() error {
	if err := s.build(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.logf("reset: %d bodies", s.World.Len())
	return nil
}

// Drain returns the events of the last tick, logging each one.
func (s *Session) Drain() []physics.Event {
	events := s.World.Events()
	for _, e := range events {
		s.logf("%s", e)
	}
	return events
}

// Logger returns the session logger, possibly nil.
func (s *Session) Logger() *logger.Logger {
	return s.log
}

func (s *Session) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}
