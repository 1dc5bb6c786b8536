package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"collision-sim/internal/config"
	"collision-sim/internal/logger"
	"collision-sim/internal/physics"
	"collision-sim/internal/scenario"
	"collision-sim/internal/session"
	"collision-sim/internal/sound"
	"collision-sim/internal/stats"
	"collision-sim/internal/tui"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "YAML config file")
	random := flag.Int("random", 0, "replace the layout with N random bodies")
	mute := flag.Bool("mute", false, "disable sound")
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

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	sfx := sound.NewManager()
	if !*mute {
		if err := sfx.Initialize(); err != nil {
			// non-fatal, the simulation runs silent
			log.Logf("audio initialization failed: %v", err)
		}
	}
	defer sfx.Close()

	run(screen, sess, sfx, cfg.FPS)
	log.Logf("exit at tick %d", sess.World.Tick())
}

func run(screen tcell.Screen, sess *session.Session, sfx *sound.Manager, fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, eventChan, done)

	rep := stats.NewReporter(0)
	settings := sess.World.Settings()
	colliding := make(map[physics.Handle]bool)

	for {
		select {
		case ev := <-eventChan:
			if !handleInput(screen, sess, ev) {
				return
			}
		case <-ticker.C:
			for _, e := range sess.Update() {
				if e.Kind == physics.EventShattered {
					sfx.PlayShatter()
				}
			}
			for _, v := range sess.World.Snapshot() {
				// click only when a body starts colliding
				if v.Colliding && !colliding[v.Handle] {
					sfx.PlayHit(v.Material)
				}
				colliding[v.Handle] = v.Colliding
			}
			rep.Record(sess.World.AggregateByMaterial())
			status := fmt.Sprintf(" %s | tick %d | %s | c mode, space pause, r reset, q quit",
				sess.Mode, sess.World.Tick(), stats.Summary(rep.Rows()))
			if sess.Paused {
				status = " PAUSED" + status
			}
			tui.Draw(screen, sess.World.Snapshot(), settings.Width, settings.Height, status)
			screen.Show()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func handleInput(screen tcell.Screen, sess *session.Session, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'c':
			sess.ToggleMode()
		case ' ':
			sess.Pause()
		case 'r':
			if err := sess.Reset(); err != nil {
				sess.Logger().Log(err.Error())
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
