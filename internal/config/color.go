package config

import (
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a material colour written either as [r, g, b] or as "#rgb" / "#rrggbb".
type Color struct {
	R, G, B uint8
}

// RGBA returns the opaque colour.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		rgb, ok := ParseHexColor(n.Value)
		if !ok {
			return fmt.Errorf("line %d: color %q: want #rgb or #rrggbb", n.Line, n.Value)
		}
		*c = rgb
		return nil
	case yaml.SequenceNode:
		var v []int
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: color: %w", n.Line, err)
		}
		rgb, err := channels(v)
		if err != nil {
			return fmt.Errorf("line %d: color: %w", n.Line, err)
		}
		*c = rgb
		return nil
	}
	return fmt.Errorf("line %d: color: want [r, g, b] or #rrggbb", n.Line)
}

func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// ParseHexColor parses #RGB or #RRGGBB. Returns false on any other input.
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return Color{}, false
	}
	hex := s[1:]
	digits := make([]uint8, len(hex))
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, false
		}
		digits[i] = d
	}
	switch len(digits) {
	case 3:
		// #RGB -> RR GG BB
		return Color{digits[0] * 17, digits[1] * 17, digits[2] * 17}, true
	case 6:
		return Color{digits[0]<<4 + digits[1], digits[2]<<4 + digits[3], digits[4]<<4 + digits[5]}, true
	}
	return Color{}, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func channels(v []int) (Color, error) {
	if len(v) != 3 {
		return Color{}, fmt.Errorf("want [r, g, b], got %v", v)
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return Color{}, fmt.Errorf("channel %d out of range 0-255", c)
		}
	}
	return Color{uint8(v[0]), uint8(v[1]), uint8(v[2])}, nil
}
