package flappy

// State is the mutable simulation state of one game.
type State struct {
	Bird     Bird
	Pipes    []Pipe  // Insertion order is render and collision order
	Score    float64 // Half a point per pipe, so a full pair is worth one
	GameOver bool    // Latched; Step is a no-op while set
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Pipes = append([]Pipe(nil), s.Pipes...)
	return c
}

// World holds the physics parameters of the simulation, in pixels per tick.
type World struct {
	Gravity        int
	PipeVelocityX  int
	ScreenHeight   int
	PruneOffscreen bool
}

// StepResult reports what happened during one tick.
type StepResult struct {
	Passed   int  // Pipes newly passed this tick
	Collided bool // Bird overlapped a pipe
	FellOut  bool // Bird dropped below the bottom of the screen
	Pruned   int  // Pipes removed after leaving the screen
}

// Ended reports whether this tick ended the game.
func (r StepResult) Ended() bool {
	return r.Collided || r.FellOut
}

// PointsPerPipe is the score awarded for passing a single pipe.
const PointsPerPipe = 0.5

// Step advances the simulation by one tick. It does nothing once the game is over.
//
// Order matters: the bird moves first, then the pipes, then scoring and
// collision both read the updated positions.
func Step(s *State, w World) StepResult {
	var res StepResult
	if s.GameOver {
		return res
	}

	// Gravity, clamped at the top edge
	b := &s.Bird
	b.VelocityY += w.Gravity
	b.Y += b.VelocityY
	if b.Y < 0 {
		b.Y = 0
	}

	for i := range s.Pipes {
		s.Pipes[i].X += w.PipeVelocityX
	}

	// Passing: the bird's x is past the pipe's trailing edge
	for i := range s.Pipes {
		p := &s.Pipes[i]
		if !p.Passed && b.X > p.Right() {
			p.Passed = true
			s.Score += PointsPerPipe
			res.Passed++
		}
	}

	birdRect := b.Rect()
	for _, p := range s.Pipes {
		if birdRect.Intersects(p.Rect()) {
			res.Collided = true
			break
		}
	}

	if b.Y > w.ScreenHeight {
		res.FellOut = true
	}

	if w.PruneOffscreen {
		res.Pruned = prune(s)
	}

	if res.Ended() {
		s.GameOver = true
	}
	return res
}

// prune drops pipes whose trailing edge has reached the left screen boundary.
// Returns the number removed.
func prune(s *State) int {
	kept := s.Pipes[:0]
	for _, p := range s.Pipes {
		if p.Right() > 0 {
			kept = append(kept, p)
		}
	}
	removed := len(s.Pipes) - len(kept)
	s.Pipes = kept
	return removed
}
