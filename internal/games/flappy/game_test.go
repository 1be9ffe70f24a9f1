package flappy

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
)

var errMissingSprite = errors.New("missing sprite")

type stubAssets map[string]core.Sprite

func (s stubAssets) Sprite(name string) (core.Sprite, error) {
	sp, ok := s[name]
	if !ok {
		return core.Sprite{}, errMissingSprite
	}
	return sp, nil
}

func testAssets() stubAssets {
	return stubAssets{
		SpriteBackground: {Name: SpriteBackground, Fill: ' ', Color: core.ColorSky},
		SpriteBird:       {Name: SpriteBird, Fill: '@', Edge: '>', Color: core.ColorYellow},
		SpriteTopPipe:    {Name: SpriteTopPipe, Fill: '|', Edge: '=', Color: core.ColorGreen},
		SpriteBottomPipe: {Name: SpriteBottomPipe, Fill: '|', Edge: '=', Color: core.ColorGreen},
	}
}

func newTestGame(t *testing.T, cfg config.FlappyConfig, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, testAssets(), nil, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// constOffset places every top pipe at -pipeHeight/4 - r.
func constOffset(r int) OffsetSource {
	return func(int) int { return r }
}

// autopilot flaps whenever the bird sinks below its start height, keeping
// it between y=285 and y=321.
func autopilot(g *Game) {
	if g.state.Bird.Y > 320 {
		g.Jump()
	}
}

type journalRun struct {
	seed   int64
	startY int
	jumps  []int
	ticks  int
	ended  bool
}

type memJournal struct {
	runs []*journalRun
}

func (j *memJournal) BeginRun(seed int64, startY int) {
	j.runs = append(j.runs, &journalRun{seed: seed, startY: startY})
}

func (j *memJournal) RecordJump(tick int) {
	r := j.runs[len(j.runs)-1]
	r.jumps = append(r.jumps, tick)
}

func (j *memJournal) EndRun(ticks int) {
	r := j.runs[len(j.runs)-1]
	r.ticks = ticks
	r.ended = true
}

func TestNewErrors(t *testing.T) {
	t.Run("missing sprite", func(t *testing.T) {
		assets := testAssets()
		delete(assets, SpriteBottomPipe)

		_, err := New(config.DefaultFlappyConfig(), assets, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, errMissingSprite) {
			t.Errorf("error %v does not wrap the loader error", err)
		}
		if !strings.Contains(err.Error(), SpriteBottomPipe) {
			t.Errorf("error %q does not name the sprite", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.DefaultFlappyConfig()
		cfg.Screen.Height = 0
		if _, err := New(cfg, testAssets(), nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("no assets", func(t *testing.T) {
		if _, err := New(config.DefaultFlappyConfig(), nil, nil); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewInitialState(t *testing.T) {
	var frames []Frame
	g, err := New(config.DefaultFlappyConfig(), testAssets(), RendererFunc(func(f Frame) {
		frames = append(frames, f)
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s := g.State()
	if s.Bird.X != 45 || s.Bird.Y != 320 || s.Bird.VelocityY != 0 {
		t.Errorf("bird = %+v, want (45, 320) at rest", s.Bird)
	}
	if len(s.Pipes) != 0 || s.Score != 0 || s.GameOver {
		t.Errorf("state = %+v, want empty running state", s)
	}
	if g.Phase() != PhaseRunning {
		t.Errorf("Phase = %v, want running", g.Phase())
	}
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1 initial frame", len(frames))
	}
	if frames[0].BirdSprite.Name != SpriteBird || frames[0].ScoreText() != "0" {
		t.Errorf("initial frame = %+v", frames[0])
	}
}

func TestPumpRunsOneTick(t *testing.T) {
	var frames int
	g, err := New(config.DefaultFlappyConfig(), testAssets(), RendererFunc(func(Frame) { frames++ }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g.Pump()

	s := g.State()
	if s.Bird.VelocityY != 1 || s.Bird.Y != 321 {
		t.Errorf("bird = (y=%d, vy=%d), want (321, 1)", s.Bird.Y, s.Bird.VelocityY)
	}
	if g.Ticks() != 1 {
		t.Errorf("Ticks = %d, want 1", g.Ticks())
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestJumpAppliesBeforeTick(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig())

	g.Jump()
	if g.State().Bird.VelocityY != 0 {
		t.Error("Jump must not mutate state before the queue is pumped")
	}
	g.Pump()

	s := g.State()
	if s.Bird.VelocityY != -8 || s.Bird.Y != 312 {
		t.Errorf("bird = (y=%d, vy=%d), want (312, -8)", s.Bird.Y, s.Bird.VelocityY)
	}
}

func TestBirdFallsOut(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig())

	for i := 0; i < 100 && g.Phase() == PhaseRunning; i++ {
		g.Pump()
	}

	// y after n ticks from rest is 320 + n(n+1)/2; it first exceeds 640 at n=25
	if g.Phase() != PhaseGameOver {
		t.Fatal("bird never fell out")
	}
	if g.Ticks() != 25 {
		t.Errorf("Ticks = %d, want 25", g.Ticks())
	}
	if got := g.Frame().ScoreText(); got != "Game Over : 0" {
		t.Errorf("ScoreText = %q", got)
	}

	// Game over freezes the simulation
	before := g.State()
	for i := 0; i < 200; i++ {
		g.Pump()
	}
	after := g.State()
	if after.Bird != before.Bird || len(after.Pipes) != 0 || g.Ticks() != 25 {
		t.Errorf("state changed after game over: %+v", after)
	}
}

func TestSpawnTiming(t *testing.T) {
	g := newTestGame(t, config.DefaultFlappyConfig(), WithOffsetSource(constOffset(0)))

	for i := 0; i < 90; i++ {
		autopilot(g)
		g.Pump()
	}
	if n := len(g.State().Pipes); n != 0 {
		t.Fatalf("pipes after 90 ticks = %d, want 0", n)
	}

	autopilot(g)
	g.Pump()

	pipes := g.State().Pipes
	if len(pipes) != 2 {
		t.Fatalf("pipes after 91 ticks = %d, want 2", len(pipes))
	}
	if pipes[0].Kind != KindTop || pipes[1].Kind != KindBottom {
		t.Errorf("kinds = (%v, %v), want (top, bottom)", pipes[0].Kind, pipes[1].Kind)
	}
	// Spawned at 360 just before tick 91 moved them
	for i, p := range pipes {
		if p.X != 356 {
			t.Errorf("pipe %d X = %d, want 356", i, p.X)
		}
	}
	if pipes[0].Y != -128 || pipes[1].Y != 544 {
		t.Errorf("Y = (%d, %d), want (-128, 544)", pipes[0].Y, pipes[1].Y)
	}
}

func TestScoreWholePairs(t *testing.T) {
	// The opening spans 256..416, clear of the autopilot's 285..345 band
	g := newTestGame(t, config.DefaultFlappyConfig(), WithOffsetSource(constOffset(128)))

	prev := 0.0
	maxPipes := 0
	for i := 0; i < 600; i++ {
		autopilot(g)
		g.Pump()

		s := g.State()
		if s.GameOver {
			t.Fatalf("game over at tick %d", g.Ticks())
		}
		if s.Score < prev {
			t.Fatalf("score decreased from %v to %v", prev, s.Score)
		}
		if s.Score != float64(int(s.Score)) {
			t.Fatalf("score %v is not a whole number after a tick", s.Score)
		}
		prev = s.Score
		if len(s.Pipes) > maxPipes {
			maxPipes = len(s.Pipes)
		}
	}

	if prev < 4 {
		t.Errorf("score after 600 ticks = %v, want at least 4", prev)
	}
	if maxPipes > 12 {
		t.Errorf("pipe sequence grew to %d; off-screen pipes are not pruned", maxPipes)
	}
}

func TestRestartAfterCollision(t *testing.T) {
	// With zero offset the top pipe reaches y=384 and the autopilot flies into it
	g := newTestGame(t, config.DefaultFlappyConfig(), WithOffsetSource(constOffset(0)))

	for i := 0; i < 400 && g.Phase() == PhaseRunning; i++ {
		autopilot(g)
		g.Pump()
	}
	if g.Phase() != PhaseGameOver {
		t.Fatal("expected a collision")
	}
	crashY := g.State().Bird.Y
	if crashY > 640 {
		t.Fatalf("bird fell out at y=%d instead of colliding", crashY)
	}
	if len(g.State().Pipes) == 0 {
		t.Fatal("expected pipes on screen at game over")
	}

	g.Jump()
	g.Pump()

	s := g.State()
	if s.GameOver {
		t.Fatal("jump after game over should restart")
	}
	if len(s.Pipes) != 0 || s.Score != 0 {
		t.Errorf("after restart: pipes = %d, score = %v; want 0, 0", len(s.Pipes), s.Score)
	}
	// Bird height carries over; one tick of gravity from rest
	if s.Bird.Y != crashY+1 || s.Bird.VelocityY != 1 {
		t.Errorf("bird = (y=%d, vy=%d), want (%d, 1)", s.Bird.Y, s.Bird.VelocityY, crashY+1)
	}
	if g.Runs() != 2 || g.Ticks() != 1 {
		t.Errorf("Runs = %d, Ticks = %d; want 2, 1", g.Runs(), g.Ticks())
	}

	// Spawning resumes one full spawn period after the restart
	for i := 0; i < 89; i++ {
		autopilot(g)
		g.Pump()
	}
	if n := len(g.State().Pipes); n != 0 {
		t.Fatalf("pipes 90 ticks after restart = %d, want 0", n)
	}
	autopilot(g)
	g.Pump()
	if n := len(g.State().Pipes); n != 2 {
		t.Errorf("pipes 91 ticks after restart = %d, want 2", n)
	}
}

func TestRestartBirdHeight(t *testing.T) {
	tests := []struct {
		name      string
		reset     bool
		wantPhase Phase
		wantY     int
	}{
		// Still below the screen, so the first tick ends the run again
		{"kept", false, PhaseGameOver, 646},
		{"reset", true, PhaseRunning, 321},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Rules.ResetBirdY = tt.reset
			g := newTestGame(t, cfg)

			for g.Phase() == PhaseRunning {
				g.Pump()
			}
			if y := g.State().Bird.Y; y != 645 {
				t.Fatalf("fell out at y=%d, want 645", y)
			}

			g.Jump()
			g.Pump()

			if g.Phase() != tt.wantPhase {
				t.Errorf("Phase = %v, want %v", g.Phase(), tt.wantPhase)
			}
			if y := g.State().Bird.Y; y != tt.wantY {
				t.Errorf("Y = %d, want %d", y, tt.wantY)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (State, int) {
		g := newTestGame(t, config.DefaultFlappyConfig(), WithSeed(12345))
		for i := 0; i < 2000 && g.Phase() == PhaseRunning; i++ {
			autopilot(g)
			g.Pump()
		}
		return g.State(), g.Ticks()
	}

	s1, ticks1 := run()
	s2, ticks2 := run()

	if ticks1 != ticks2 {
		t.Errorf("ticks differ: %d vs %d", ticks1, ticks2)
	}
	if s1.Score != s2.Score || s1.Bird != s2.Bird || s1.GameOver != s2.GameOver {
		t.Errorf("states differ:\n%+v\n%+v", s1, s2)
	}
	if len(s1.Pipes) != len(s2.Pipes) {
		t.Fatalf("pipe counts differ: %d vs %d", len(s1.Pipes), len(s2.Pipes))
	}
	for i := range s1.Pipes {
		if s1.Pipes[i] != s2.Pipes[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, s1.Pipes[i], s2.Pipes[i])
		}
	}
}

func TestJournal(t *testing.T) {
	j := &memJournal{}
	g := newTestGame(t, config.DefaultFlappyConfig(), WithSeed(3), WithJournal(j))

	for i := 0; i < 3000 && g.Phase() == PhaseRunning; i++ {
		autopilot(g)
		g.Pump()
	}

	if len(j.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(j.runs))
	}
	r := j.runs[0]
	if r.seed != 3 || r.startY != 320 {
		t.Errorf("run = (seed=%d, startY=%d), want (3, 320)", r.seed, r.startY)
	}
	if len(r.jumps) == 0 || r.jumps[0] != 1 {
		t.Errorf("jumps = %v, want first jump at tick 1", r.jumps)
	}
	if g.Phase() == PhaseGameOver && (!r.ended || r.ticks != g.Ticks()) {
		t.Errorf("EndRun = (%v, %d), want (true, %d)", r.ended, r.ticks, g.Ticks())
	}

	if g.Phase() == PhaseGameOver {
		g.Jump()
		g.Pump()
		if len(j.runs) != 2 {
			t.Fatalf("runs after restart = %d, want 2", len(j.runs))
		}
		if j.runs[1].seed != g.Seed() {
			t.Errorf("restart seed = %d, game seed = %d", j.runs[1].seed, g.Seed())
		}
	}
}

func TestReplayMatchesLive(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Rules.ResetBirdY = true

	j := &memJournal{}
	g := newTestGame(t, cfg, WithSeed(42), WithJournal(j))

	// Two runs: the second one starts from a reseeded spawner
	for run := 0; run < 2; run++ {
		if run > 0 {
			g.Jump()
		}
		for i := 0; i < 3000 && (g.Phase() == PhaseRunning || i == 0); i++ {
			autopilot(g)
			g.Pump()
		}
		r := j.runs[len(j.runs)-1]
		if !r.ended {
			r.ticks = g.Ticks()
		}

		got, err := Replay(cfg, testAssets(), Script{
			Seed:     r.seed,
			StartY:   r.startY,
			Jumps:    r.jumps,
			MaxTicks: r.ticks,
		})
		if err != nil {
			t.Fatalf("run %d: Replay: %v", run, err)
		}

		live := g.State()
		if got.Ticks != g.Ticks() || got.Score != live.Score || got.GameOver != live.GameOver {
			t.Errorf("run %d: replay = %+v, live = (ticks=%d, score=%v, over=%v)",
				run, got, g.Ticks(), live.Score, live.GameOver)
		}
		if got.Pipes != len(live.Pipes) {
			t.Errorf("run %d: replay pipes = %d, live = %d", run, got.Pipes, len(live.Pipes))
		}

		if g.Phase() != PhaseGameOver {
			break
		}
	}
}

func TestReplayLimit(t *testing.T) {
	// Without jumps the bird falls out at tick 25 unless the limit comes first
	res, err := Replay(config.DefaultFlappyConfig(), testAssets(), Script{Seed: 1, StartY: 320, MaxTicks: 10})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Ticks != 10 || res.GameOver {
		t.Errorf("result = %+v, want 10 ticks still running", res)
	}

	res, err = Replay(config.DefaultFlappyConfig(), testAssets(), Script{Seed: 1, StartY: 320})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Ticks != 25 || !res.GameOver {
		t.Errorf("result = %+v, want game over at tick 25", res)
	}
}
