package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"collision-sim/internal/env"
	"collision-sim/internal/material"
	"collision-sim/internal/physics"
	"collision-sim/internal/scenario"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/sim.yaml"

// Config is the on-disk simulation setup. Zero-valued optional sections fall back to Default.
type Config struct {
	World     WorldConfig               `yaml:"world"`
	Respawn   RespawnConfig             `yaml:"respawn"`
	Mode      string                    `yaml:"mode"`
	Seed      int64                     `yaml:"seed"`
	FPS       int                       `yaml:"target_fps"`
	ShowFPS   bool                      `yaml:"show_fps"`
	LogPath   string                    `yaml:"log_path"`
	Materials map[string]MaterialConfig `yaml:"materials,omitempty"`
	// Bodies replaces the demo layout when non-empty.
	Bodies []BodyConfig `yaml:"bodies,omitempty"`
}

type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

type RespawnConfig struct {
	Inset  float64   `yaml:"inset"`
	Speeds []float64 `yaml:"speeds"`
}

// MaterialConfig overrides part of a material. Nil fields keep the stock value.
type MaterialConfig struct {
	Color       *Color   `yaml:"color,omitempty"`
	Restitution *float64 `yaml:"restitution,omitempty"`
	Density     *float64 `yaml:"density,omitempty"`
}

type BodyConfig struct {
	Shape    string  `yaml:"shape"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius,omitempty"`
	W        float64 `yaml:"w,omitempty"`
	H        float64 `yaml:"h,omitempty"`
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	Material string  `yaml:"material"`
}

// Default returns the 800x600 demo setup in brute-force mode at 60 FPS.
func Default() Config {
	s := physics.DefaultSettings()
	return Config{
		World:   WorldConfig{Width: s.Width, Height: s.Height, CellSize: s.CellSize},
		Respawn: RespawnConfig{Inset: s.RespawnInset, Speeds: s.RespawnSpeeds},
		Mode:    physics.BruteForce.String(),
		FPS:     60,
		LogPath: "logs/sim.txt",
	}
}

// Load reads a YAML config from path on top of Default. A missing file returns Default();
// a file that does not parse or validate is an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadWithEnv loads dotenv into the process environment (existing variables win), reads the
// config file at path and applies SIM_* overrides on top. The result is validated.
func LoadWithEnv(path, dotenv string) (Config, error) {
	if err := env.Load(dotenv); err != nil {
		return Default(), fmt.Errorf("load %s: %w", dotenv, err)
	}
	c, err := Load(path)
	if err != nil {
		return c, err
	}
	if err := ApplyEnv(&c, os.LookupEnv); err != nil {
		return Default(), err
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("environment: %w", err)
	}
	return c, nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from SIM_* variables. lookup is usually os.LookupEnv.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"SIM_WORLD_WIDTH", &c.World.Width},
		{"SIM_WORLD_HEIGHT", &c.World.Height},
		{"SIM_CELL_SIZE", &c.World.CellSize},
		{"SIM_RESPAWN_INSET", &c.Respawn.Inset},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	if v, ok := lookup("SIM_SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("SIM_SEED: %w", err)
		}
		c.Seed = n
	}
	if v, ok := lookup("SIM_TARGET_FPS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SIM_TARGET_FPS: %w", err)
		}
		c.FPS = n
	}
	if v, ok := lookup("SIM_SHOW_FPS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SIM_SHOW_FPS: %w", err)
		}
		c.ShowFPS = b
	}
	if v, ok := lookup("SIM_MODE"); ok {
		c.Mode = strings.TrimSpace(v)
	}
	if v, ok := lookup("SIM_LOG_PATH"); ok {
		c.LogPath = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks everything Settings, ModeValue and Specs would reject, plus the frame rate.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", c.FPS)
	}
	if _, err := c.ModeValue(); err != nil {
		return err
	}
	s, err := c.Settings()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	_, err = c.Specs()
	return err
}

// Clone returns a deep copy; the material overrides and body list are not shared.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return out
}

// ModeValue parses Mode.
func (c Config) ModeValue() (physics.Mode, error) {
	return physics.ParseMode(c.Mode)
}

// Settings converts c to world settings. Material overrides are applied to the stock table.
func (c Config) Settings() (physics.Settings, error) {
	s := physics.DefaultSettings()
	s.Width, s.Height, s.CellSize = c.World.Width, c.World.Height, c.World.CellSize
	s.RespawnInset = c.Respawn.Inset
	s.RespawnSpeeds = append([]float64(nil), c.Respawn.Speeds...)
	s.Seed = c.Seed
	for name, mc := range c.Materials {
		m, err := material.Parse(name)
		if err != nil {
			return s, fmt.Errorf("materials: %w", err)
		}
		p := &s.Materials[m]
		if mc.Color != nil {
			p.Color = mc.Color.RGBA()
		}
		if mc.Restitution != nil {
			p.Restitution = *mc.Restitution
		}
		if mc.Density != nil {
			p.Density = *mc.Density
		}
	}
	return s, nil
}

// Specs returns the configured bodies, or the demo layout when none are listed.
func (c Config) Specs() ([]scenario.Spec, error) {
	if len(c.Bodies) == 0 {
		return scenario.Default(), nil
	}
	specs := make([]scenario.Spec, 0, len(c.Bodies))
	for i, b := range c.Bodies {
		shape, err := scenario.ParseShape(b.Shape)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		m, err := material.Parse(b.Material)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		specs = append(specs, scenario.Spec{
			Shape: shape, X: b.X, Y: b.Y, Radius: b.Radius, W: b.W, H: b.H,
			VX: b.VX, VY: b.VY, Material: m,
		})
	}
	return specs, nil
}
