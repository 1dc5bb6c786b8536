package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"collision-sim/internal/material"
)

const sampleRate = beep.SampleRate(44100)

// Manager plays short procedural effects: a crackle when glass shatters and a click pitched
// by material when bodies start colliding. Before Initialize succeeds every Play is a no-op,
// so the simulation runs the same without an audio device.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	// limit clicks so a pile-up does not flood the mixer
	lastClick time.Time
	now       func() time.Time
}

// NewManager returns an uninitialized manager.
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}, now: time.Now}
}

// Initialize opens the speaker. Failure is not fatal; callers log it and carry on silent.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops every sound.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}

// PlayShatter plays the glass-breaking crackle.
func (m *Manager) PlayShatter() {
	m.add(beep.Take(sampleRate.N(250*time.Millisecond), NewCrackle(sampleRate, 1)))
}

// PlayHit plays a short click for material m, at most once every 40ms.
func (m *Manager) PlayHit(mat material.Material) {
	m.mu.Lock()
	now := m.now()
	if now.Sub(m.lastClick) < 40*time.Millisecond {
		m.mu.Unlock()
		return
	}
	m.lastClick = now
	m.mu.Unlock()
	m.add(beep.Take(sampleRate.N(60*time.Millisecond), NewClick(sampleRate, Pitch(mat))))
}

func (m *Manager) add(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Pitch is the click frequency in Hz for a material: dense metals ring low, rubber and wood thud.
func Pitch(m material.Material) float64 {
	switch m {
	case material.Iron:
		return 440
	case material.Wood:
		return 220
	case material.Rubber:
		return 160
	case material.Glass:
		return 1320
	case material.Gold:
		return 330
	}
	return 440
}

// Click is a sine tone with an exponential decay.
type Click struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewClick creates a click generator at freq Hz.
func NewClick(sr beep.SampleRate, freq float64) *Click {
	return &Click{sr: sr, freq: freq}
}

func (g *Click) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		s := 0.25 * math.Exp(-t*40) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Click) Err() error {
	return nil
}

// Crackle is decaying noise over a high ring, the glass-breaking sound.
type Crackle struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrackle creates a crackle generator. The same seed gives the same samples.
func NewCrackle(sr beep.SampleRate, seed int64) *Crackle {
	return &Crackle{sr: sr, seed: seed}
}

func (g *Crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 12)
		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		ring := 0.2 * math.Sin(2*math.Pi*2600*t)
		s := envelope * (0.3*noise + ring)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Crackle) Err() error {
	return nil
}
