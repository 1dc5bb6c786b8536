package render

import (
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"collision-sim/internal/effects"
	"collision-sim/internal/material"
	"collision-sim/internal/physics"
	"collision-sim/internal/stats"
)

const (
	titleSize  = 22
	legendSize = 16
	outline    = 3

	legendWidth  = 140
	legendTop    = 100
	legendRow    = 20
	legendSwatch = 15

	chartBarWidth  = 12
	chartHeight    = 60
	chartHistoryW  = 240
	chartMarginBot = 12
)

var (
	colliding = rl.Red
	rim       = rl.White
	// chart colours are reused every frame
	chartBack    = rl.NewColor(20, 20, 20, 200)
	chartActive  = rl.NewColor(90, 90, 90, 255)
	chartHistory = rl.NewColor(255, 80, 80, 255)
)

// Renderer draws body snapshots, the HUD and shatter animations. It reads world state only
// through snapshots and aggregates and never mutates the world.
type Renderer struct {
	Materials material.Table
	Effects   effects.Set
	font      rl.Font
}

// New returns a renderer using the given material colours for the legend.
func New(table material.Table) *Renderer {
	return &Renderer{Materials: table}
}

// SetFont sets the HUD font. Zero texture ID = use raylib default.
func (r *Renderer) SetFont(font rl.Font) {
	r.font = font
}

// Bodies draws active bodies: colliding ones filled red, the rest outlined in their material
// colour, all with a thin white rim.
func (r *Renderer) Bodies(views []physics.BodyView) {
	for i := range views {
		v := &views[i]
		if !v.Active {
			continue
		}
		switch v.Kind {
		case physics.Circle:
			center := rl.NewVector2(float32(v.X), float32(v.Y))
			radius := float32(v.Radius)
			if v.Colliding {
				rl.DrawCircleV(center, radius, colliding)
			} else {
				rl.DrawRing(center, math32.Max(radius-outline, 0), radius, 0, 360, 36, rlColor(v.Color))
			}
			rl.DrawCircleLinesV(center, radius, rim)
		case physics.Rectangle:
			rect := rl.NewRectangle(float32(v.X), float32(v.Y), float32(v.W), float32(v.H))
			if v.Colliding {
				rl.DrawRectangleRec(rect, colliding)
			} else {
				rl.DrawRectangleLinesEx(rect, outline, rlColor(v.Color))
			}
			rl.DrawRectangleLinesEx(rect, 1, rim)
		}
	}
}

// Shatter starts the break animation for a shattered body.
func (r *Renderer) Shatter(e physics.Event, view physics.BodyView) {
	size := float32(view.Radius)
	x, y := float32(e.X), float32(e.Y)
	if view.Kind == physics.Rectangle {
		size = math32.Max(float32(view.W), float32(view.H)) / 2
		x += float32(view.W) / 2
		y += float32(view.H) / 2
	}
	r.Effects.Spawn(x, y, size, view.Color)
}

// DrawEffects advances and draws the running shatter animations. dt is the frame time in seconds.
func (r *Renderer) DrawEffects(dt float32) {
	r.Effects.Update(dt)
	for _, sh := range r.Effects.Active() {
		c := sh.Color
		c.A = uint8(255 * sh.Alpha)
		col := rlColor(c)
		rl.DrawCircleLinesV(rl.NewVector2(sh.X, sh.Y), sh.Radius, col)
		for _, p := range sh.Shards() {
			rl.DrawRectangleV(rl.NewVector2(p.X-p.Size/2, p.Y-p.Size/2), rl.NewVector2(p.Size, p.Size), col)
		}
	}
}

// HUD draws the mode title and key help top-left and the material legend top-right.
func (r *Renderer) HUD(mode physics.Mode) {
	title := "Mode: Brute Force (O(n^2)) - C to switch"
	if mode == physics.SpatialGrid {
		title = "Mode: Spatial Grid broad phase - C to switch"
	}
	r.text(title, 20, 20, titleSize, rl.White)
	r.text("P - Menu | ` - Console | F - FPS | ESC - Quit", 20, 50, titleSize, rl.White)
	r.legend()
}

func (r *Renderer) legend() {
	x := float32(rl.GetScreenWidth()) - 150
	h := float32(len(material.All)*legendRow + 10 + legendRow)
	rl.DrawRectangleLinesEx(rl.NewRectangle(x, legendTop-5, legendWidth, h), 2, rl.White)
	r.text("Materials", x+5, legendTop, legendSize, rl.White)
	y := float32(legendTop + 25)
	for _, m := range material.All {
		rl.DrawRectangleRec(rl.NewRectangle(x+10, y, legendSwatch, legendSwatch), rlColor(r.Materials[m].Color))
		r.text(capitalize(m.String()), x+30, y, legendSize, rl.White)
		y += legendRow
	}
}

// Chart draws the per-material active/colliding bars and the rolling collision history
// along the bottom-left corner.
func (r *Renderer) Chart(rep *stats.Reporter) {
	bottom := float32(rl.GetScreenHeight()) - chartMarginBot
	top := bottom - chartHeight
	rows := rep.Rows()
	width := float32(len(rows)*(chartBarWidth+6)+8) + chartHistoryW + 8
	rl.DrawRectangleRec(rl.NewRectangle(12, top-4, width, chartHeight+8), chartBack)

	scale := chartHeight / float32(rep.MaxActive())
	x := float32(16)
	for _, row := range rows {
		ah := float32(row.Active) * scale
		ch := float32(row.Colliding) * scale
		rl.DrawRectangleRec(rl.NewRectangle(x, bottom-ah, chartBarWidth, ah), chartActive)
		rl.DrawRectangleRec(rl.NewRectangle(x, bottom-ch, chartBarWidth, ch), rlColor(r.Materials[row.Material].Color))
		x += chartBarWidth + 6
	}

	history := rep.History()
	if len(history) < 2 {
		return
	}
	x += 8
	peak := float32(max(rep.Peak(), 1))
	step := float32(chartHistoryW) / float32(len(history)-1)
	prev := rl.NewVector2(x, bottom-float32(history[0])/peak*chartHeight)
	for i := 1; i < len(history); i++ {
		next := rl.NewVector2(x+float32(i)*step, bottom-float32(history[i])/peak*chartHeight)
		rl.DrawLineV(prev, next, chartHistory)
		prev = next
	}
}

// Menu draws the start screen.
func (r *Renderer) Menu() {
	w := float32(rl.GetScreenWidth())
	r.centered("2D Collision Simulation", w, 200, 44)
	r.centered("SPACE - Start simulation", w, 320, 26)
	r.centered("ESC - Quit", w, 360, 26)
}

func (r *Renderer) centered(s string, screenW float32, y float32, size float32) {
	r.text(s, (screenW-r.measure(s, size))/2, y, size, rl.White)
}

func (r *Renderer) measure(s string, size float32) float32 {
	if r.font.Texture.ID != 0 {
		return rl.MeasureTextEx(r.font, s, size, 1).X
	}
	return float32(rl.MeasureText(s, int32(size)))
}

func (r *Renderer) text(s string, x, y, size float32, c rl.Color) {
	if r.font.Texture.ID != 0 {
		rl.DrawTextEx(r.font, s, rl.NewVector2(x, y), size, 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), int32(size), c)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
