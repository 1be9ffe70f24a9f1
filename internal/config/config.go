// Package config provides YAML-based game configuration loading with
// embedded defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Screen  FlappyScreen  `yaml:"screen"`
	Physics FlappyPhysics `yaml:"physics"`
	Bird    FlappyBird    `yaml:"bird"`
	Pipes   FlappyPipes   `yaml:"pipes"`
	Timing  FlappyTiming  `yaml:"timing"`
	Rules   FlappyRules   `yaml:"rules"`
}

// FlappyScreen defines the logical resolution in pixels.
type FlappyScreen struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyPhysics defines per-tick physics parameters (pixels, pixels/tick).
type FlappyPhysics struct {
	Gravity       int `yaml:"gravity"`
	JumpImpulse   int `yaml:"jump_impulse"`
	PipeVelocityX int `yaml:"pipe_velocity_x"`
}

// FlappyBird defines the bird's hitbox and start position.
// Zero X/Y fall back to width/8 and height/2 of the screen.
type FlappyBird struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyPipes defines pipe dimensions.
// A zero OpeningGap falls back to a quarter of the screen height.
type FlappyPipes struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	OpeningGap int `yaml:"opening_gap"`
}

// FlappyTiming defines the two periodic triggers.
type FlappyTiming struct {
	TickRate      int `yaml:"tick_rate"`       // Update ticks per second
	SpawnPeriodMS int `yaml:"spawn_period_ms"` // Milliseconds between pipe pairs
}

// FlappyRules toggles behaviors that deviate from the classic game.
type FlappyRules struct {
	PruneOffscreen bool `yaml:"prune_offscreen"` // Drop pipes once they leave the left edge
	ResetBirdY     bool `yaml:"reset_bird_y"`    // Move the bird back to its start height on restart
}

// UpdatePeriod returns the simulated duration of one update tick.
func (c FlappyConfig) UpdatePeriod() time.Duration {
	if c.Timing.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Timing.TickRate)
}

// SpawnPeriod returns the simulated duration between pipe pairs.
func (c FlappyConfig) SpawnPeriod() time.Duration {
	return time.Duration(c.Timing.SpawnPeriodMS) * time.Millisecond
}

// BirdX returns the bird's fixed horizontal position.
func (c FlappyConfig) BirdX() int {
	if c.Bird.X == 0 {
		return c.Screen.Width / 8
	}
	return c.Bird.X
}

// BirdY returns the bird's starting vertical position.
func (c FlappyConfig) BirdY() int {
	if c.Bird.Y == 0 {
		return c.Screen.Height / 2
	}
	return c.Bird.Y
}

// OpeningGap returns the vertical space between a top and bottom pipe.
func (c FlappyConfig) OpeningGap() int {
	if c.Pipes.OpeningGap == 0 {
		return c.Screen.Height / 4
	}
	return c.Pipes.OpeningGap
}

// Validate reports every out-of-range field in one error.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}

	positive("screen.width", c.Screen.Width)
	positive("screen.height", c.Screen.Height)
	positive("bird.width", c.Bird.Width)
	positive("bird.height", c.Bird.Height)
	positive("pipes.width", c.Pipes.Width)
	positive("pipes.height", c.Pipes.Height)
	positive("timing.tick_rate", c.Timing.TickRate)
	positive("timing.spawn_period_ms", c.Timing.SpawnPeriodMS)

	if c.Pipes.Height > 0 && c.Pipes.Height < 2 {
		errs = append(errs, fmt.Errorf("pipes.height must be at least 2, got %d", c.Pipes.Height))
	}
	if c.Pipes.OpeningGap < 0 {
		errs = append(errs, fmt.Errorf("pipes.opening_gap must not be negative, got %d", c.Pipes.OpeningGap))
	}
	if c.Bird.X < 0 || c.Bird.Y < 0 {
		errs = append(errs, fmt.Errorf("bird position must not be negative, got (%d, %d)", c.Bird.X, c.Bird.Y))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
