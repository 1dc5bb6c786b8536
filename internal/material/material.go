package material

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrUnknownMaterial is returned for names or values outside the five known materials.
var ErrUnknownMaterial = errors.New("unknown material")

// Material identifies one of the fixed body materials.
type Material uint8

const (
	Iron Material = iota
	Wood
	Rubber
	Glass
	Gold

	count
)

// All lists every material in legend order.
var All = [count]Material{Iron, Wood, Rubber, Glass, Gold}

var names = [count]string{"iron", "wood", "rubber", "glass", "gold"}

// Props are the physical and visual constants attached to a material.
type Props struct {
	Color       color.RGBA
	Restitution float64 // 0 = fully inelastic, 1 = fully elastic
	Density     float64
}

// Table maps every material to its props. It is a fixed-size array so every material always has an entry.
type Table [count]Props

// DefaultTable returns the stock material table. Colours follow the original legend
// (iron blue, wood brown, rubber grey, glass cyan, gold yellow).
func DefaultTable() Table {
	return Table{
		Iron:   {Color: color.RGBA{0, 0, 255, 255}, Restitution: 0.6, Density: 7.8},
		Wood:   {Color: color.RGBA{139, 69, 19, 255}, Restitution: 0.5, Density: 0.7},
		Rubber: {Color: color.RGBA{100, 100, 100, 255}, Restitution: 0.9, Density: 1.1},
		Glass:  {Color: color.RGBA{0, 255, 255, 255}, Restitution: 0.7, Density: 2.5},
		Gold:   {Color: color.RGBA{255, 255, 0, 255}, Restitution: 0.4, Density: 19.3},
	}
}

// Valid reports whether m is one of the known materials.
func (m Material) Valid() bool {
	return m < count
}

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return names[m]
}

// Parse returns the material named s (case-insensitive).
func Parse(s string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return Material(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
}

// Lookup returns the props for m, or ErrUnknownMaterial when m is out of range.
func (t *Table) Lookup(m Material) (Props, error) {
	if !m.Valid() {
		return Props{}, fmt.Errorf("%w: %d", ErrUnknownMaterial, uint8(m))
	}
	return t[m], nil
}

// Validate checks restitution is in [0,1] and density is positive for every entry.
func (t *Table) Validate() error {
	for _, m := range All {
		p := t[m]
		if p.Restitution < 0 || p.Restitution > 1 {
			return fmt.Errorf("material %s: restitution %v outside [0,1]", m, p.Restitution)
		}
		if !(p.Density > 0) {
			return fmt.Errorf("material %s: density must be positive, got %v", m, p.Density)
		}
	}
	return nil
}
