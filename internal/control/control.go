package control

import (
	"flag"
	"fmt"
	"strings"

	"collision-sim/internal/commands"
	"collision-sim/internal/material"
	"collision-sim/internal/physics"
	"collision-sim/internal/scenario"
	"collision-sim/internal/session"
)

// Console turns "cmd ..." lines into session operations. Output and errors go to the session logger.
type Console struct {
	s   *session.Session
	reg *commands.Registry
}

// New registers the console commands for s.
func New(s *session.Session) *Console {
	c := &Console{s: s, reg: commands.NewRegistry()}
	c.registerMode()
	c.registerSimple("pause", "toggle stepping", func() error {
		if c.s.Pause() {
			c.print("paused")
		} else {
			c.print("running")
		}
		return nil
	})
	c.registerSimple("reset", "rebuild the world from the initial layout", c.s.Reset)
	c.registerSimple("stats", "per-material active and colliding counts", c.stats)
	c.registerSimple("help", "list commands", func() error {
		for _, line := range c.reg.Help() {
			c.print(line)
		}
		return nil
	})
	c.registerAdd()
	return c
}

// Run executes one terminal line. Lines without the "cmd " prefix are logged as-is and
// return false.
func (c *Console) Run(line string) (handled bool) {
	args, ok := commands.Parse(line)
	if !ok {
		c.print(line)
		return false
	}
	if err := c.reg.Execute(args); err != nil {
		c.print("error: " + err.Error())
	}
	return true
}

// Registry exposes the underlying command registry.
func (c *Console) Registry() *commands.Registry {
	return c.reg
}

func (c *Console) print(line string) {
	if log := c.s.Logger(); log != nil {
		log.Log(line)
	}
}

func (c *Console) registerSimple(name, usage string, run func() error) {
	c.reg.Register(name, usage, flag.NewFlagSet(name, flag.ContinueOnError), run)
}

func (c *Console) registerMode() {
	fs := flag.NewFlagSet("mode", flag.ContinueOnError)
	c.reg.Register("mode", "[brute|grid] (no argument toggles)", fs, func() error {
		switch fs.NArg() {
		case 0:
			c.s.ToggleMode()
		case 1:
			m, err := physics.ParseMode(fs.Arg(0))
			if err != nil {
				return err
			}
			c.s.SetMode(m)
		default:
			return fmt.Errorf("mode: too many arguments")
		}
		c.print("mode is " + c.s.Mode.String())
		return nil
	})
}

func (c *Console) registerAdd() {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	x := fs.Float64("x", 400, "x position (centre for circles, corner for rects)")
	y := fs.Float64("y", 300, "y position")
	r := fs.Float64("r", 20, "circle radius")
	w := fs.Float64("w", 40, "rect width")
	h := fs.Float64("h", 40, "rect height")
	vx := fs.Float64("vx", 0, "x velocity per tick")
	vy := fs.Float64("vy", 0, "y velocity per tick")
	mat := fs.String("material", "iron", "iron, wood, rubber, glass or gold")

	c.reg.Register("add", "circle|rect [-x N -y N -r N | -w N -h N] [-vx N -vy N] [-material NAME]", fs, func() error {
		if fs.NArg() != 1 {
			return fmt.Errorf("add: want circle or rect")
		}
		shape, err := scenario.ParseShape(fs.Arg(0))
		if err != nil {
			return err
		}
		m, err := material.Parse(*mat)
		if err != nil {
			return err
		}
		spec := scenario.Spec{Shape: shape, X: *x, Y: *y, Radius: *r, W: *w, H: *h, VX: *vx, VY: *vy, Material: m}
		handles, err := scenario.Populate(c.s.World, []scenario.Spec{spec})
		if err != nil {
			return err
		}
		c.print(fmt.Sprintf("added %s %s as body %d", m, shape, handles[0]))
		return nil
	})
}

func (c *Console) stats() error {
	agg := c.s.World.AggregateByMaterial()
	parts := make([]string, 0, len(material.All))
	for _, m := range material.All {
		n := agg[m]
		parts = append(parts, fmt.Sprintf("%s %d/%d", m, n.Colliding, n.Active))
	}
	c.print(fmt.Sprintf("tick %d %s candidates %d | %s", c.s.World.Tick(), c.s.Mode, c.s.World.Candidates(), strings.Join(parts, ", ")))
	return nil
}
