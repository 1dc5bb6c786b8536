package physics

import "math/rand/v2"

// DefaultRespawnInset keeps respawned bodies off the world edges.
const DefaultRespawnInset = 50

// DefaultRespawnSpeeds are the per-axis speed magnitudes a respawned body may get.
var DefaultRespawnSpeeds = []float64{3, 4, 5}

// Respawner brings destroyed bodies back with a fresh random position and velocity.
type Respawner struct {
	Width, Height float64
	Inset         float64
	Speeds        []float64
	rng           *rand.Rand
}

// NewRespawner returns a respawner drawing from rng.
func NewRespawner(width, height, inset float64, speeds []float64, rng *rand.Rand) *Respawner {
	return &Respawner{Width: width, Height: height, Inset: inset, Speeds: speeds, rng: rng}
}

// Recover reactivates every inactive body and calls onRespawn (if set) for each one.
// Only position, velocity and Active change. It returns the number of bodies respawned.
func (r *Respawner) Recover(bodies []Body, onRespawn func(Handle)) int {
	n := 0
	for i := range bodies {
		b := &bodies[i]
		if b.Active {
			continue
		}
		b.X = r.coord(r.Width)
		b.Y = r.coord(r.Height)
		b.VX = r.speed()
		b.VY = r.speed()
		b.Active = true
		n++
		if onRespawn != nil {
			onRespawn(Handle(i))
		}
	}
	return n
}

// coord is uniform in [inset, extent-inset).
func (r *Respawner) coord(extent float64) float64 {
	return r.Inset + r.rng.Float64()*(extent-2*r.Inset)
}

func (r *Respawner) speed() float64 {
	v := r.Speeds[r.rng.IntN(len(r.Speeds))]
	if r.rng.IntN(2) == 0 {
		return -v
	}
	return v
}
