package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"collision-sim/internal/config"
	"collision-sim/internal/physics"
	"collision-sim/internal/scenario"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "YAML config file")
	bodies := flag.Int("bodies", 500, "number of random bodies")
	ticks := flag.Int("ticks", 600, "ticks to run per mode")
	seed := flag.Int64("seed", 1, "layout and respawn seed")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*cfgPath, ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings.Seed = *seed

	opts := scenario.DefaultRandomOptions()
	opts.Count, opts.Width, opts.Height, opts.Seed = *bodies, settings.Width, settings.Height, *seed
	specs := scenario.Random(opts)

	fmt.Printf("%d bodies, %d ticks, cell size %v\n", *bodies, *ticks, settings.CellSize)
	for _, mode := range []physics.Mode{physics.BruteForce, physics.SpatialGrid} {
		r, err := measure(settings, specs, mode, *ticks)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%-13s %10v/tick  %8.1f candidates/tick  %6.1f contacts/tick\n",
			mode, r.perTick, r.candidates, r.contacts)
	}
}

type result struct {
	perTick    time.Duration
	candidates float64
	contacts   float64
}

func measure(settings physics.Settings, specs []scenario.Spec, mode physics.Mode, ticks int) (result, error) {
	w, err := physics.NewWorld(settings)
	if err != nil {
		return result{}, err
	}
	if _, err := scenario.Populate(w, specs); err != nil {
		return result{}, err
	}
	var candidates, contacts int
	start := time.Now()
	for i := 0; i < ticks; i++ {
		w.Step(mode)
		candidates += w.Candidates()
		contacts += len(w.Contacts())
	}
	elapsed := time.Since(start)
	n := float64(max(ticks, 1))
	return result{
		perTick:    elapsed / time.Duration(max(ticks, 1)),
		candidates: float64(candidates) / n,
		contacts:   float64(contacts) / n,
	}, nil
}
