package core

// Sprite is the drawable identity of an entity. The simulation never looks
// inside a sprite; it only hands sprites to the renderer alongside geometry.
type Sprite struct {
	Name  string
	Fill  rune  // Glyph used to fill the entity's cells in character renderers
	Edge  rune  // Glyph for the edge facing the opening (pipe caps, the bird's beak)
	Color Color // Foreground color
}
