package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 16
	padding    = 10
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
	// top offset so the overlay sits under the material legend
	legendClearance = 240
)

// Frame is the per-frame simulation state shown by the overlay.
type Frame struct {
	Tick       uint64
	Mode       string
	Bodies     int
	Candidates int
	Contacts   int
}

// Debug draws the FPS and simulation counters (top-right, green) when ShowFPS is on.
type Debug struct {
	ShowFPS    bool
	font       rl.Font
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a Debug overlay, hidden unless show is true.
func New(show bool) *Debug {
	return &Debug{ShowFPS: show}
}

// Toggle flips the overlay.
func (d *Debug) Toggle() {
	d.ShowFPS = !d.ShowFPS
}

// SetFont sets the overlay font. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the overlay. Text is only recomputed every updateInterval frames.
func (d *Debug) Draw(f Frame) {
	d.frameCount++
	if !d.ShowFPS {
		return
	}
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		runtime.ReadMemStats(&d.memStats)
		d.lines = append(d.lines[:0],
			fmt.Sprintf("FPS: %d", rl.GetFPS()),
			fmt.Sprintf("tick %d", f.Tick),
			f.Mode,
			fmt.Sprintf("bodies %d", f.Bodies),
			fmt.Sprintf("candidates %d", f.Candidates),
			fmt.Sprintf("contacts %d", f.Contacts),
			fmt.Sprintf("heap %.2f MiB", float64(d.memStats.HeapAlloc)/(1024*1024)),
		)
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(legendClearance)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}
