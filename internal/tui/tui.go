package tui

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"collision-sim/internal/physics"
)

const (
	circleRune = 'o'
	rectRune   = '#'
)

var collidingStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

// Viewport maps world coordinates onto a cols x rows character grid.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

// Cell returns the grid cell containing world point (x, y), and false when it is off-grid.
func (v Viewport) Cell(x, y float64) (col, row int, ok bool) {
	if v.Cols <= 0 || v.Rows <= 0 || x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return 0, 0, false
	}
	return int(x / v.Width * float64(v.Cols)), int(y / v.Height * float64(v.Rows)), true
}

// center returns the world point at the middle of a cell.
func (v Viewport) center(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * v.Width / float64(v.Cols), (float64(row) + 0.5) * v.Height / float64(v.Rows)
}

// span returns the cells [a, b] covering world interval [lo, hi) along one axis.
func (v Viewport) span(lo, hi float64, extent float64, n int) (int, int) {
	a := int(math.Floor(lo / extent * float64(n)))
	b := int(math.Ceil(hi/extent*float64(n))) - 1
	return max(a, 0), min(b, n-1)
}

// Draw clears screen and draws the active bodies in the rows above the status line.
// It does not call Show.
func Draw(screen tcell.Screen, views []physics.BodyView, width, height float64, status string) {
	screen.Clear()
	cols, rows := screen.Size()
	vp := Viewport{Cols: cols, Rows: rows - 1, Width: width, Height: height}
	for i := range views {
		drawBody(screen, vp, &views[i])
	}
	drawStatus(screen, cols, rows-1, status)
}

func drawBody(screen tcell.Screen, vp Viewport, b *physics.BodyView) {
	if !b.Active || vp.Rows <= 0 {
		return
	}
	style := styleFor(b)
	box := b.Bounds()
	c0, c1 := vp.span(box.Left(), box.Right(), vp.Width, vp.Cols)
	r0, r1 := vp.span(box.Top(), box.Bottom(), vp.Height, vp.Rows)
	drawn := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if b.Kind == physics.Circle {
				x, y := vp.center(col, row)
				dx, dy := x-b.X, y-b.Y
				if dx*dx+dy*dy > b.Radius*b.Radius {
					continue
				}
				screen.SetContent(col, row, circleRune, nil, style)
			} else {
				screen.SetContent(col, row, rectRune, nil, style)
			}
			drawn = true
		}
	}
	// bodies smaller than a cell still show up at their anchor
	if !drawn {
		x, y := b.X, b.Y
		if b.Kind == physics.Rectangle {
			x, y = box.Center()
		}
		if col, row, ok := vp.Cell(x, y); ok {
			r := rectRune
			if b.Kind == physics.Circle {
				r = circleRune
			}
			screen.SetContent(col, row, r, nil, style)
		}
	}
}

func styleFor(b *physics.BodyView) tcell.Style {
	if b.Colliding {
		return collidingStyle
	}
	return tcell.StyleDefault.Foreground(rgb(b.Color))
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawStatus(screen tcell.Screen, cols, row int, status string) {
	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range status {
		if col >= cols {
			break
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		screen.SetContent(col, row, ' ', nil, style)
	}
}
