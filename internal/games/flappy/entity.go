package flappy

import (
	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
)

// Kind identifies which half of a pipe pair a pipe is, and so which sprite it uses.
type Kind int

const (
	KindTop Kind = iota
	KindBottom
)

// String returns the kind's name.
func (k Kind) String() string {
	if k == KindBottom {
		return "bottom"
	}
	return "top"
}

// Layout is the fixed geometry of a game, in logical pixels.
// Entity factories take it explicitly instead of reading shared fields.
type Layout struct {
	ScreenWidth  int
	ScreenHeight int
	BirdX        int
	BirdY        int
	BirdWidth    int
	BirdHeight   int
	PipeWidth    int
	PipeHeight   int
	OpeningGap   int
}

// NewLayout derives a Layout from configuration.
func NewLayout(cfg config.FlappyConfig) Layout {
	return Layout{
		ScreenWidth:  cfg.Screen.Width,
		ScreenHeight: cfg.Screen.Height,
		BirdX:        cfg.BirdX(),
		BirdY:        cfg.BirdY(),
		BirdWidth:    cfg.Bird.Width,
		BirdHeight:   cfg.Bird.Height,
		PipeWidth:    cfg.Pipes.Width,
		PipeHeight:   cfg.Pipes.Height,
		OpeningGap:   cfg.OpeningGap(),
	}
}

// Bird is the player entity.
type Bird struct {
	X, Y          int
	Width, Height int
	VelocityY     int // Pixels per tick, negative is up
}

// NewBird creates a bird at the layout's start position with no velocity.
func NewBird(l Layout) Bird {
	return Bird{
		X:      l.BirdX,
		Y:      l.BirdY,
		Width:  l.BirdWidth,
		Height: l.BirdHeight,
	}
}

// Rect returns the bird's collision rectangle.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// Pipe is one half of an obstacle pair.
type Pipe struct {
	X, Y          int
	Width, Height int
	Passed        bool // Set once the bird's leading edge clears the pipe's trailing edge
	Kind          Kind
}

// NewPipe creates a pipe of the given kind at the right edge of the screen.
func NewPipe(l Layout, kind Kind, y int) Pipe {
	return Pipe{
		X:      l.ScreenWidth,
		Y:      y,
		Width:  l.PipeWidth,
		Height: l.PipeHeight,
		Kind:   kind,
	}
}

// Rect returns the pipe's collision rectangle.
func (p Pipe) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Right returns the x-coordinate of the pipe's trailing edge.
func (p Pipe) Right() int {
	return p.X + p.Width
}
