// Package assets loads sprite sheets from YAML.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flappy/internal/core"
)

//go:embed sprites.yaml
var defaultSheetYAML []byte

// ErrSpriteNotFound is returned when a sheet has no sprite of the requested name.
var ErrSpriteNotFound = errors.New("assets: sprite not found")

// spriteDef is a sprite as written in YAML.
type spriteDef struct {
	Fill  string `yaml:"fill"`
	Edge  string `yaml:"edge"`
	Color string `yaml:"color"`
}

type sheetFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
}

// Sheet is a named set of sprites. It satisfies flappy.AssetLoader.
type Sheet struct {
	sprites map[string]core.Sprite
}

// Default returns the embedded sprite sheet.
func Default() (*Sheet, error) {
	return Parse(defaultSheetYAML)
}

// DefaultYAML returns the embedded sprite sheet source.
func DefaultYAML() []byte {
	return defaultSheetYAML
}

// Load reads a sprite sheet from path. An empty path loads the embedded sheet.
func Load(path string) (*Sheet, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read sheet: %w", err)
	}
	return Parse(data)
}

// Parse decodes a sprite sheet.
func Parse(data []byte) (*Sheet, error) {
	var f sheetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: parse sheet: %w", err)
	}
	if len(f.Sprites) == 0 {
		return nil, errors.New("assets: sheet has no sprites")
	}

	s := &Sheet{sprites: make(map[string]core.Sprite, len(f.Sprites))}
	for name, def := range f.Sprites {
		sp, err := def.sprite(name)
		if err != nil {
			return nil, fmt.Errorf("assets: sprite %q: %w", name, err)
		}
		s.sprites[name] = sp
	}
	return s, nil
}

// sprite validates a definition.
// Fill must be exactly one glyph; edge is optional and defaults to fill.
func (d spriteDef) sprite(name string) (core.Sprite, error) {
	if utf8.RuneCountInString(d.Fill) != 1 {
		return core.Sprite{}, fmt.Errorf("fill must be a single glyph, got %q", d.Fill)
	}
	fill, _ := utf8.DecodeRuneInString(d.Fill)

	edge := fill
	switch utf8.RuneCountInString(d.Edge) {
	case 0:
	case 1:
		edge, _ = utf8.DecodeRuneInString(d.Edge)
	default:
		return core.Sprite{}, fmt.Errorf("edge must be a single glyph, got %q", d.Edge)
	}

	color, ok := core.ParseColor(d.Color)
	if !ok {
		return core.Sprite{}, fmt.Errorf("unknown color %q", d.Color)
	}

	return core.Sprite{Name: name, Fill: fill, Edge: edge, Color: color}, nil
}

// Sprite returns the sprite with the given name.
func (s *Sheet) Sprite(name string) (core.Sprite, error) {
	sp, ok := s.sprites[name]
	if !ok {
		return core.Sprite{}, fmt.Errorf("%w: %q", ErrSpriteNotFound, name)
	}
	return sp, nil
}

// Names returns the sprite names in sorted order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.sprites))
	for name := range s.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
