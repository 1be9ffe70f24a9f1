// Package flappy implements a Flappy Bird-style game.
// The player flaps a bird through gaps between scrolling pipe pairs.
//
// The simulation is pure: it draws through a Renderer, loads sprites through
// an AssetLoader, and runs every tick, spawn and input event as a task on one
// loop.Queue. Frontends only pump the queue and post jumps.
package flappy

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/loop"
)

// Sprite names the game loads at construction.
const (
	SpriteBackground = "background"
	SpriteBird       = "bird"
	SpriteTopPipe    = "top_pipe"
	SpriteBottomPipe = "bottom_pipe"
)

// RequiredSprites lists every sprite an AssetLoader must provide.
var RequiredSprites = []string{SpriteBackground, SpriteBird, SpriteTopPipe, SpriteBottomPipe}

// AssetLoader resolves sprites by name.
type AssetLoader interface {
	Sprite(name string) (core.Sprite, error)
}

// Journal receives the inputs needed to replay a run.
// Implementations must not block; the game calls them from inside ticks.
type Journal interface {
	BeginRun(seed int64, startY int)
	RecordJump(tick int) // tick = update ticks completed in the run before the jump
	EndRun(ticks int)
}

// Phase is the controller's state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game over"
	}
	return "running"
}

// Option configures a Game.
type Option func(*Game)

// WithSeed sets the seed of the first run.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// WithStartY overrides the bird's starting height for the first run.
func WithStartY(y int) Option {
	return func(g *Game) {
		g.startY = y
		g.hasStartY = true
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithJournal records runs for later replay.
func WithJournal(j Journal) Option {
	return func(g *Game) { g.journal = j }
}

// WithOffsetSource replaces the spawner's random offsets.
func WithOffsetSource(src OffsetSource) Option {
	return func(g *Game) { g.offset = src }
}

// sprites holds the loaded sprite set.
type sprites struct {
	background core.Sprite
	bird       core.Sprite
	topPipe    core.Sprite
	bottomPipe core.Sprite
}

// Game is the game controller. It exclusively owns the bird, the pipe
// sequence and the score, and it owns the update and spawn timers.
//
// A Game is not safe for concurrent use. Frontends call Jump and Pump from
// their single event goroutine.
type Game struct {
	cfg    config.FlappyConfig
	layout Layout
	world  World

	queue  *loop.Queue
	update *loop.Timer
	spawn  *loop.Timer

	spawner *Spawner
	offset  OffsetSource
	state   State
	sprites sprites

	renderer Renderer
	journal  Journal
	logger   *log.Logger

	seed      int64 // Seed of the current run
	startY    int
	hasStartY bool
	ticks     int // Update ticks in the current run
	runs      int
}

// New creates a game and starts both timers. It fails if the configuration
// is invalid or a required sprite cannot be loaded. A nil renderer discards frames.
func New(cfg config.FlappyConfig, assets AssetLoader, r Renderer, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if assets == nil {
		return nil, errors.New("flappy: no asset loader")
	}
	if r == nil {
		r = nopRenderer{}
	}

	g := &Game{
		cfg:    cfg,
		layout: NewLayout(cfg),
		world: World{
			Gravity:        cfg.Physics.Gravity,
			PipeVelocityX:  cfg.Physics.PipeVelocityX,
			ScreenHeight:   cfg.Screen.Height,
			PruneOffscreen: cfg.Rules.PruneOffscreen,
		},
		queue:    loop.New(),
		renderer: r,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	s, err := loadSprites(assets)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	g.sprites = s

	g.spawner = NewSpawner(g.layout, g.seed)
	g.spawner.SetOffsetSource(g.offset)

	g.state = State{Bird: NewBird(g.layout)}
	if g.hasStartY {
		g.state.Bird.Y = g.startY
	}

	g.update = g.queue.Every(cfg.UpdatePeriod(), g.tick)
	g.spawn = g.queue.Every(cfg.SpawnPeriod(), g.spawnPipes)

	g.beginRun()
	g.draw()
	return g, nil
}

// loadSprites resolves every required sprite.
func loadSprites(assets AssetLoader) (sprites, error) {
	var s sprites
	targets := map[string]*core.Sprite{
		SpriteBackground: &s.background,
		SpriteBird:       &s.bird,
		SpriteTopPipe:    &s.topPipe,
		SpriteBottomPipe: &s.bottomPipe,
	}
	for _, name := range RequiredSprites {
		sp, err := assets.Sprite(name)
		if err != nil {
			return sprites{}, fmt.Errorf("loading sprite %q: %w", name, err)
		}
		*targets[name] = sp
	}
	return s, nil
}

// Jump queues a jump. While running it sets the bird's upward velocity;
// after game over it restarts the game.
func (g *Game) Jump() {
	g.queue.Post(g.handleJump)
}

// Pump advances the virtual clock by one update period and runs every task
// that came due: queued jumps first, then the update tick and, when due, the spawn tick.
func (g *Game) Pump() int {
	return g.queue.Advance(g.cfg.UpdatePeriod())
}

// tick runs one simulation step and redraws.
func (g *Game) tick() {
	res := Step(&g.state, g.world)
	g.ticks++

	if res.Passed > 0 {
		g.logger.Debug("pipe passed", "count", res.Passed, "score", g.state.Score)
	}
	if res.Pruned > 0 {
		g.logger.Debug("pipes pruned", "count", res.Pruned, "remaining", len(g.state.Pipes))
	}

	g.draw()

	if g.state.GameOver {
		g.update.Stop()
		g.spawn.Stop()
		g.logger.Info("game over",
			"score", int(g.state.Score),
			"ticks", g.ticks,
			"collision", res.Collided,
			"fell", res.FellOut,
		)
		if g.journal != nil {
			g.journal.EndRun(g.ticks)
		}
	}
}

// spawnPipes appends a new pair, top first.
func (g *Game) spawnPipes() {
	top, bottom := g.spawner.Spawn()
	g.state.Pipes = append(g.state.Pipes, top, bottom)
	g.logger.Debug("pipe pair spawned", "top_y", top.Y, "bottom_y", bottom.Y, "pipes", len(g.state.Pipes))
}

// handleJump applies a queued jump.
func (g *Game) handleJump() {
	if g.state.GameOver {
		g.restart()
		return
	}
	g.state.Bird.VelocityY = g.cfg.Physics.JumpImpulse
	if g.journal != nil {
		g.journal.RecordJump(g.ticks)
	}
}

// restart clears the board and starts both timers again.
// The bird keeps its height unless rules.reset_bird_y is set.
func (g *Game) restart() {
	g.state.Pipes = g.state.Pipes[:0]
	g.state.Score = 0
	g.state.Bird.VelocityY = 0
	if g.cfg.Rules.ResetBirdY {
		g.state.Bird.Y = g.layout.BirdY
	} else if g.state.Bird.Y > g.layout.ScreenHeight {
		g.logger.Warn("restarting below the screen; set rules.reset_bird_y to start from the middle",
			"bird_y", g.state.Bird.Y)
	}
	g.state.GameOver = false

	g.seed = g.spawner.NextSeed()
	g.spawner.Reseed(g.seed)

	g.update.Start()
	g.spawn.Start()

	g.beginRun()
	g.draw()
}

// beginRun resets per-run counters and notifies the journal.
func (g *Game) beginRun() {
	g.ticks = 0
	g.runs++
	g.logger.Info("run started", "run", g.runs, "seed", g.seed, "bird_y", g.state.Bird.Y)
	if g.journal != nil {
		g.journal.BeginRun(g.seed, g.state.Bird.Y)
	}
}

// draw hands the current frame to the renderer.
func (g *Game) draw() {
	g.renderer.DrawFrame(g.Frame())
}

// Frame returns a snapshot of the current state for rendering.
func (g *Game) Frame() Frame {
	return Frame{
		Width:      g.layout.ScreenWidth,
		Height:     g.layout.ScreenHeight,
		Background: g.sprites.background,
		BirdSprite: g.sprites.bird,
		TopPipe:    g.sprites.topPipe,
		BottomPipe: g.sprites.bottomPipe,
		Bird:       g.state.Bird,
		Pipes:      append([]Pipe(nil), g.state.Pipes...),
		Score:      g.state.Score,
		GameOver:   g.state.GameOver,
	}
}

// Phase returns whether the game is running or over.
func (g *Game) Phase() Phase {
	if g.state.GameOver {
		return PhaseGameOver
	}
	return PhaseRunning
}

// State returns a copy of the simulation state.
func (g *Game) State() State {
	return g.state.Clone()
}

// Ticks returns the number of update ticks in the current run.
func (g *Game) Ticks() int {
	return g.ticks
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Runs returns how many runs have started, counting the first.
func (g *Game) Runs() int {
	return g.runs
}

// Layout returns the game's geometry.
func (g *Game) Layout() Layout {
	return g.layout
}

// TickRate returns update ticks per second.
func (g *Game) TickRate() int {
	return g.cfg.Timing.TickRate
}
