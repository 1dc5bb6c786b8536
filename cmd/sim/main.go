package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"collision-sim/internal/config"
	"collision-sim/internal/control"
	"collision-sim/internal/debug"
	"collision-sim/internal/fonts"
	"collision-sim/internal/graphics"
	"collision-sim/internal/logger"
	"collision-sim/internal/physics"
	"collision-sim/internal/render"
	"collision-sim/internal/scenario"
	"collision-sim/internal/session"
	"collision-sim/internal/stats"
	"collision-sim/internal/terminal"
)

type scene int

const (
	sceneMenu scene = iota
	sceneSim
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "YAML config file")
	random := flag.Int("random", 0, "replace the layout with N random bodies")
	fontName := flag.String("font", "", "font name to look up under assets/fonts (empty = first found)")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*cfgPath, ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.NewAt(cfg.LogPath)

	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mode, _ := cfg.ModeValue()
	specs, _ := cfg.Specs()
	if *random > 0 {
		opts := scenario.DefaultRandomOptions()
		opts.Count, opts.Width, opts.Height, opts.Seed = *random, settings.Width, settings.Height, cfg.Seed
		specs = scenario.Random(opts)
	}

	sess, err := session.New(settings, mode, specs, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Logf("loaded %d bodies, %s, %vx%v", sess.World.Len(), mode, settings.Width, settings.Height)

	console := control.New(sess)
	term := terminal.New(log, console.Run)
	dbg := debug.New(cfg.ShowFPS)
	rep := stats.NewReporter(0)
	rnd := render.New(settings.Materials)

	current := sceneMenu
	fontLoaded := false

	update := func() bool {
		// the console owns the keyboard on any frame it was open, including the one that closes it
		wasOpen := term.IsOpen()
		term.Update()
		if wasOpen || term.IsOpen() {
			if current == sceneSim {
				step(sess, rep, rnd)
			}
			return true
		}
		switch current {
		case sceneMenu:
			if rl.IsKeyPressed(rl.KeyEscape) {
				return false
			}
			if rl.IsKeyPressed(rl.KeySpace) {
				if err := sess.Reset(); err != nil {
					log.Log(err.Error())
					return true
				}
				rep.Reset()
				rnd.Effects.Clear()
				current = sceneSim
			}
		case sceneSim:
			switch {
			case rl.IsKeyPressed(rl.KeyEscape):
				return false
			case rl.IsKeyPressed(rl.KeyP):
				current = sceneMenu
				return true
			case rl.IsKeyPressed(rl.KeyC):
				sess.ToggleMode()
			case rl.IsKeyPressed(rl.KeyF):
				dbg.Toggle()
			}
			step(sess, rep, rnd)
		}
		return true
	}

	draw := func() {
		// fonts need the GL context, which exists once the first frame starts
		if !fontLoaded {
			fontLoaded = true
			if path, err := fonts.FindFont(*fontName); err == nil {
				if f := rl.LoadFontEx(path, 32, nil); f.Texture.ID != 0 {
					rnd.SetFont(f)
					term.SetFont(f)
					dbg.SetFont(f)
				}
			}
		}
		if current == sceneMenu {
			rnd.Menu()
		} else {
			rnd.Bodies(sess.World.Snapshot())
			rnd.DrawEffects(rl.GetFrameTime())
			rnd.HUD(sess.Mode)
			rnd.Chart(rep)
			dbg.Draw(debug.Frame{
				Tick:       sess.World.Tick(),
				Mode:       sess.Mode.String(),
				Bodies:     sess.World.Len(),
				Candidates: sess.World.Candidates(),
				Contacts:   len(sess.World.Contacts()),
			})
		}
		term.Draw()
	}

	graphics.Run(graphics.Window{
		Width:  int32(settings.Width),
		Height: int32(settings.Height),
		Title:  "2D Collision Simulation",
		FPS:    int32(cfg.FPS),
	}, update, draw)
	log.Logf("exit at tick %d", sess.World.Tick())
}

// step advances the session one tick and feeds the reporter and shatter effects.
func step(sess *session.Session, rep *stats.Reporter, rnd *render.Renderer) {
	if sess.Paused {
		return
	}
	for _, e := range sess.Update() {
		if e.Kind == physics.EventShattered {
			rnd.Shatter(e, sess.World.Body(e.Body))
		}
	}
	rep.Record(sess.World.AggregateByMaterial())
}
