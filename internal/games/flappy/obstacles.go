package flappy

import (
	"math/rand"
)

// OffsetSource returns a value in [0, n). It decides how far above the
// baseline a new top pipe is placed.
type OffsetSource func(n int) int

// Spawner creates pipe pairs at randomized heights.
type Spawner struct {
	layout Layout
	rng    *rand.Rand
	offset OffsetSource
}

// NewSpawner creates a spawner whose offsets come from an RNG seeded with seed.
func NewSpawner(l Layout, seed int64) *Spawner {
	s := &Spawner{layout: l}
	s.Reseed(seed)
	return s
}

// Reseed resets the RNG. An injected offset source is kept.
func (s *Spawner) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// SetOffsetSource replaces the RNG-backed offset source. nil restores it.
func (s *Spawner) SetOffsetSource(src OffsetSource) {
	s.offset = src
}

// NextSeed draws a seed for a following run from the spawner's own RNG,
// so a whole session stays reproducible from its first seed.
func (s *Spawner) NextSeed() int64 {
	return s.rng.Int63()
}

// Spawn returns a new top/bottom pair just off the right edge of the screen.
//
// The top pipe hangs from above the screen: its y is pipeHeight/4 above zero
// plus a random r in [0, pipeHeight/2). The bottom pipe starts openingGap
// below the top pipe's bottom edge.
func (s *Spawner) Spawn() (top, bottom Pipe) {
	l := s.layout
	r := s.draw(l.PipeHeight / 2)

	topY := 0 - l.PipeHeight/4 - r
	top = NewPipe(l, KindTop, topY)
	bottom = NewPipe(l, KindBottom, topY+l.PipeHeight+l.OpeningGap)
	return top, bottom
}

// draw returns an offset in [0, n), or 0 when n is not positive.
func (s *Spawner) draw(n int) int {
	if n <= 0 {
		return 0
	}
	if s.offset != nil {
		return s.offset(n)
	}
	return s.rng.Intn(n)
}
