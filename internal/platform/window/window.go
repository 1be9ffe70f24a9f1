// Package window runs the game in a desktop window with Ebitengine.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/games/flappy"
)

// Title is the window title.
const Title = "Flappy Bird"

// edgeSize is the thickness of pipe caps and the bird's beak, in logical pixels.
const edgeSize = 8

// View is a flappy.Renderer that keeps the latest frame for Draw.
type View struct {
	frame flappy.Frame
}

// NewView creates an empty view.
func NewView() *View {
	return &View{}
}

// DrawFrame implements flappy.Renderer.
func (v *View) DrawFrame(f flappy.Frame) {
	v.frame = f
}

// Game adapts a flappy.Game to ebiten.Game. Each Update is one pump.
type Game struct {
	game *flappy.Game
	view *View
}

// Update polls input and pumps the game once.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.game.Jump()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.game.Pump()
	return nil
}

// Draw paints the latest frame: layers in order, then the score.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.view.frame
	for _, l := range f.Layers() {
		drawLayer(screen, l)
	}
	ebitenutil.DebugPrintAt(screen, f.ScoreText(), flappy.ScoreX, flappy.ScoreY)
}

// Layout fixes the logical screen to the game's resolution.
func (g *Game) Layout(_, _ int) (int, int) {
	l := g.game.Layout()
	return l.ScreenWidth, l.ScreenHeight
}

func drawLayer(dst *ebiten.Image, l flappy.Layer) {
	r := l.Rect
	if r.Empty() {
		return
	}
	fill := l.Sprite.Color.RGBA()
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)

	var edge core.Rect
	switch l.Edge {
	case flappy.EdgeTop:
		edge = core.NewRect(r.X, r.Y, r.W, edgeSize)
	case flappy.EdgeBottom:
		edge = core.NewRect(r.X, r.Bottom()-edgeSize, r.W, edgeSize)
	case flappy.EdgeRight:
		edge = core.NewRect(r.Right()-edgeSize, r.Y+r.H/3, edgeSize, r.H/3)
	default:
		return
	}
	vector.DrawFilledRect(dst, float32(edge.X), float32(edge.Y), float32(edge.W), float32(edge.H), core.Shade(fill, 0.7), false)
}

// Run opens the window and blocks until it is closed.
func Run(game *flappy.Game, view *View) error {
	l := game.Layout()
	ebiten.SetWindowSize(l.ScreenWidth, l.ScreenHeight)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(game.TickRate())

	return ebiten.RunGame(&Game{game: game, view: view})
}
