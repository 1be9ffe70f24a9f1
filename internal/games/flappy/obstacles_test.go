package flappy

import (
	"testing"

	"github.com/vovakirdan/flappy/internal/config"
)

func TestSpawnPlacement(t *testing.T) {
	l := NewLayout(config.DefaultFlappyConfig())

	tests := []struct {
		name       string
		offset     int
		wantTop    int
		wantBottom int
	}{
		{"zero offset", 0, -128, 544},
		{"mid offset", 128, -256, 416},
		{"max offset", 255, -383, 289},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpawner(l, 1)
			s.SetOffsetSource(func(int) int { return tt.offset })

			top, bottom := s.Spawn()
			if top.Y != tt.wantTop || bottom.Y != tt.wantBottom {
				t.Errorf("Y = (%d, %d), want (%d, %d)", top.Y, bottom.Y, tt.wantTop, tt.wantBottom)
			}
			if top.X != 360 || bottom.X != 360 {
				t.Errorf("X = (%d, %d), want 360", top.X, bottom.X)
			}
			if top.Kind != KindTop || bottom.Kind != KindBottom {
				t.Errorf("kinds = (%v, %v)", top.Kind, bottom.Kind)
			}
			if top.Passed || bottom.Passed {
				t.Error("new pipes must not be passed")
			}
			// The opening is exactly the configured gap
			if gap := bottom.Y - (top.Y + top.Height); gap != 160 {
				t.Errorf("gap = %d, want 160", gap)
			}
		})
	}
}

func TestSpawnOffsetRange(t *testing.T) {
	l := NewLayout(config.DefaultFlappyConfig())
	s := NewSpawner(l, 7)

	var gotN int
	s.SetOffsetSource(func(n int) int {
		gotN = n
		return 0
	})
	s.Spawn()
	if gotN != 256 {
		t.Errorf("offset range = %d, want pipeHeight/2 = 256", gotN)
	}

	s.SetOffsetSource(nil)
	for i := 0; i < 500; i++ {
		top, _ := s.Spawn()
		if top.Y > -128 || top.Y <= -384 {
			t.Fatalf("top Y = %d outside (-384, -128]", top.Y)
		}
	}
}

func TestSpawnerDeterminism(t *testing.T) {
	l := NewLayout(config.DefaultFlappyConfig())
	a := NewSpawner(l, 99)
	b := NewSpawner(l, 99)

	for i := 0; i < 50; i++ {
		ta, _ := a.Spawn()
		tb, _ := b.Spawn()
		if ta.Y != tb.Y {
			t.Fatalf("spawn %d: %d != %d", i, ta.Y, tb.Y)
		}
	}
	if a.NextSeed() != b.NextSeed() {
		t.Error("NextSeed differs for identical spawners")
	}

	a.Reseed(5)
	b.Reseed(5)
	ta, _ := a.Spawn()
	tb, _ := b.Spawn()
	if ta.Y != tb.Y {
		t.Error("reseeded spawners diverge")
	}
}
