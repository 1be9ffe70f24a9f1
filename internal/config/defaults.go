package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: FlappyScreen{
			Width:  360,
			Height: 640,
		},
		Physics: FlappyPhysics{
			Gravity:       1,
			JumpImpulse:   -9,
			PipeVelocityX: -4,
		},
		Bird: FlappyBird{
			X:      45,
			Y:      320,
			Width:  34,
			Height: 24,
		},
		Pipes: FlappyPipes{
			Width:      64,
			Height:     512,
			OpeningGap: 160,
		},
		Timing: FlappyTiming{
			TickRate:      60,
			SpawnPeriodMS: 1500,
		},
		Rules: FlappyRules{
			PruneOffscreen: true,
			ResetBirdY:     false,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
