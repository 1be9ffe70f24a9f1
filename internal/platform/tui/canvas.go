package tui

import (
	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/games/flappy"
)

// Canvas is a flappy.Renderer that draws frames onto a character grid.
// The game's logical resolution is scaled to the grid, so every cell
// covers Width/cols by Height/rows logical pixels.
type Canvas struct {
	screen *core.Screen
	last   flappy.Frame
	drawn  bool
}

// NewCanvas creates a canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{screen: core.NewScreen(cols, rows)}
}

// DrawFrame implements flappy.Renderer.
func (c *Canvas) DrawFrame(f flappy.Frame) {
	c.last = f
	c.drawn = true
	c.paint()
}

// Resize changes the grid size and repaints the last frame.
func (c *Canvas) Resize(cols, rows int) {
	c.screen.Resize(cols, rows)
	if c.drawn {
		c.paint()
	}
}

// Screen returns the cell buffer.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

func (c *Canvas) paint() {
	s := c.screen
	s.Clear()
	f := c.last
	if s.Width() == 0 || s.Height() == 0 || f.Width <= 0 || f.Height <= 0 {
		return
	}

	for _, l := range f.Layers() {
		c.paintLayer(l)
	}

	x := core.FloorDiv(flappy.ScoreX*s.Width(), f.Width)
	y := core.FloorDiv(flappy.ScoreY*s.Height(), f.Height)
	s.DrawText(x, y, f.ScoreText(), core.ColorBrightWhite)
}

func (c *Canvas) paintLayer(l flappy.Layer) {
	r := c.toCells(l.Rect)
	sp := l.Sprite
	c.screen.FillRect(r, core.Cell{Rune: sp.Fill, Color: sp.Color})

	edge := core.Cell{Rune: sp.Edge, Color: sp.Color}
	switch l.Edge {
	case flappy.EdgeTop:
		c.screen.FillRect(core.NewRect(r.X, r.Y, r.W, 1), edge)
	case flappy.EdgeBottom:
		c.screen.FillRect(core.NewRect(r.X, r.Bottom()-1, r.W, 1), edge)
	case flappy.EdgeRight:
		c.screen.FillRect(core.NewRect(r.Right()-1, r.Y, 1, r.H), edge)
	}
}

// toCells maps a logical rectangle to the cells it touches.
// Anything with a positive size covers at least one cell.
func (c *Canvas) toCells(r core.Rect) core.Rect {
	cols, rows := c.screen.Width(), c.screen.Height()
	w, h := c.last.Width, c.last.Height

	x0 := core.FloorDiv(r.X*cols, w)
	x1 := core.CeilDiv(r.Right()*cols, w)
	y0 := core.FloorDiv(r.Y*rows, h)
	y1 := core.CeilDiv(r.Bottom()*rows, h)

	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}
