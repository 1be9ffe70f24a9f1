package flappy

import (
	"sort"

	"github.com/vovakirdan/flappy/internal/config"
)

// DefaultReplayLimit caps replays that never end: ten minutes at 60 ticks per second.
const DefaultReplayLimit = 10 * 60 * 60

// Script is everything needed to reproduce one run.
type Script struct {
	Seed     int64
	StartY   int
	Jumps    []int // Tick indices, as passed to Journal.RecordJump
	MaxTicks int   // 0 means DefaultReplayLimit
}

// ReplayResult summarizes a replayed run.
type ReplayResult struct {
	Ticks    int
	Score    float64
	GameOver bool
	Pipes    int // Pipes on screen when the replay stopped
}

// Replay re-simulates a recorded run headlessly. The same configuration,
// seed, start height and jump ticks always produce the same result.
func Replay(cfg config.FlappyConfig, assets AssetLoader, s Script, opts ...Option) (ReplayResult, error) {
	opts = append(opts, WithSeed(s.Seed), WithStartY(s.StartY))
	g, err := New(cfg, assets, nil, opts...)
	if err != nil {
		return ReplayResult{}, err
	}

	jumps := append([]int(nil), s.Jumps...)
	sort.Ints(jumps)

	limit := s.MaxTicks
	if limit <= 0 {
		limit = DefaultReplayLimit
	}

	next := 0
	for g.ticks < limit && !g.state.GameOver {
		for next < len(jumps) && jumps[next] <= g.ticks {
			if jumps[next] == g.ticks {
				g.Jump()
			}
			next++
		}
		g.Pump()
	}

	return ReplayResult{
		Ticks:    g.ticks,
		Score:    g.state.Score,
		GameOver: g.state.GameOver,
		Pipes:    len(g.state.Pipes),
	}, nil
}
