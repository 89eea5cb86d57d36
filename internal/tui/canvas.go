// SPDX-License-Identifier: MIT
package tui

import (
	"math"
	"strings"

	"scope/internal/render"
	"scope/internal/view"
)

const (
	blank  = ' '
	trace  = '█'
	dot    = '•'
	stroke = '·'
)

// canvas is a grid of runes, one cell per viewport pixel.
type canvas struct {
	w, h  int
	cells []rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]rune, c.w*c.h)
	c.clear()
	return c
}

func (c *canvas) clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = r
}

func (c *canvas) at(x, y int) rune {
	return c.cells[y*c.w+x]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// cell maps a pixel coordinate to a cell index clamped to one cell outside
// [0, n), so off-grid segments stay short. Non-finite values map to -1.
func cell(p float64, n int) int {
	if !finite(p) {
		return -1
	}
	return int(math.Floor(min(max(p, -1), float64(n))))
}

// vline fills column x between pixel rows y0 and y1 inclusive, clipped.
func (c *canvas) vline(x int, y0, y1 float64, r rune) {
	if !finite(y0) || !finite(y1) {
		return
	}
	a, b := cell(y0, c.h), cell(y1, c.h)
	if a > b {
		a, b = b, a
	}
	a, b = max(a, 0), min(b, c.h-1)
	for y := a; y <= b; y++ {
		c.set(x, y, r)
	}
}

// line joins two pixel positions with Bresenham steps.
func (c *canvas) line(x0, y0, x1, y1 float64, r rune) {
	if !finite(x0) || !finite(y0) || !finite(x1) || !finite(y1) {
		return
	}
	ax, ay, bx, by := cell(x0, c.w), cell(y0, c.h), cell(x1, c.w), cell(y1, c.h)
	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(ax, ay, r)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

func (c *canvas) String() string {
	var sb strings.Builder
	sb.Grow(len(c.cells) * 2)
	for y := range c.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(c.cells[y*c.w : (y+1)*c.w]))
	}
	return sb.String()
}

// draw paints a frame. MinMax columns become vertical bars, Line joins the
// points and Points marks each one.
func (c *canvas) draw(st *view.State, frame render.Frame) {
	c.clear()
	if frame.Empty() {
		return
	}

	switch frame.Mode {
	case render.MinMax:
		for _, col := range frame.Columns {
			c.vline(col.X, st.ToY(float64(col.Max)), st.ToY(float64(col.Min)), trace)
		}
	case render.Line:
		for i := 1; i < len(frame.Points); i++ {
			p, q := frame.Points[i-1], frame.Points[i]
			c.line(p.X, p.Y, q.X, q.Y, stroke)
		}
		if len(frame.Points) == 1 {
			c.mark(frame.Points[0], stroke)
		}
	case render.Points:
		for _, p := range frame.Points {
			c.mark(p, dot)
		}
	}
}

func (c *canvas) mark(p render.Point, r rune) {
	if finite(p.X) && finite(p.Y) {
		c.set(cell(p.X, c.w), cell(p.Y, c.h), r)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
