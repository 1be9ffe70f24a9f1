package flappy

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/flappy/internal/core"
)

// Renderer draws frames. Implementations live in the platform packages.
type Renderer interface {
	DrawFrame(f Frame)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(f Frame)

// DrawFrame calls fn(f).
func (fn RendererFunc) DrawFrame(f Frame) {
	fn(f)
}

// nopRenderer discards frames, for headless runs.
type nopRenderer struct{}

func (nopRenderer) DrawFrame(Frame) {}

// Frame is a snapshot of everything a renderer needs for one redraw.
// It holds copies; renderers may keep it.
type Frame struct {
	Width, Height int // Logical resolution

	Background core.Sprite
	BirdSprite core.Sprite
	TopPipe    core.Sprite
	BottomPipe core.Sprite

	Bird     Bird
	Pipes    []Pipe
	Score    float64
	GameOver bool
}

// PipeSprite returns the sprite for a pipe's kind.
func (f Frame) PipeSprite(p Pipe) core.Sprite {
	if p.Kind == KindBottom {
		return f.BottomPipe
	}
	return f.TopPipe
}

// HUD anchor of the score text, in logical pixels.
const (
	ScoreX = 10
	ScoreY = 35
)

// ScoreText returns the HUD text for the frame.
func (f Frame) ScoreText() string {
	return ScoreText(f.Score, f.GameOver)
}

// ScoreText formats a score the way the HUD shows it: whole points only,
// prefixed with "Game Over : " once the game has ended.
func ScoreText(score float64, gameOver bool) string {
	if gameOver {
		return fmt.Sprintf("Game Over : %d", int(score))
	}
	return strconv.Itoa(int(score))
}

// Edge marks which side of a layer gets the sprite's edge glyph.
type Edge int

const (
	EdgeNone   Edge = iota
	EdgeTop         // Bottom pipes: cap faces up into the opening
	EdgeBottom      // Top pipes: cap faces down into the opening
	EdgeRight       // The bird's beak
)

// Layer is one rectangle to paint, in logical pixels.
type Layer struct {
	Rect   core.Rect
	Sprite core.Sprite
	Edge   Edge
}

// Layers returns the frame's draw list in paint order: background stretched
// over the whole screen, the bird, then each pipe in sequence order.
func (f Frame) Layers() []Layer {
	layers := make([]Layer, 0, len(f.Pipes)+2)
	layers = append(layers,
		Layer{Rect: core.NewRect(0, 0, f.Width, f.Height), Sprite: f.Background},
		Layer{Rect: f.Bird.Rect(), Sprite: f.BirdSprite, Edge: EdgeRight},
	)
	for _, p := range f.Pipes {
		edge := EdgeBottom
		if p.Kind == KindBottom {
			edge = EdgeTop
		}
		layers = append(layers, Layer{Rect: p.Rect(), Sprite: f.PipeSprite(p), Edge: edge})
	}
	return layers
}
