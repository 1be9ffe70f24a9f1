package core

import (
	"image/color"
	"strings"
)

// Color represents a foreground color for a screen cell or sprite.
// Values map onto the ANSI 16-color palette plus a few 256-color extras;
// frontends translate them to their own color model.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorSky
)

var colorNames = map[Color]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright_red",
	ColorBrightGreen:   "bright_green",
	ColorBrightYellow:  "bright_yellow",
	ColorBrightBlue:    "bright_blue",
	ColorBrightMagenta: "bright_magenta",
	ColorBrightCyan:    "bright_cyan",
	ColorBrightWhite:   "bright_white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
	ColorSky:           "sky",
}

// String returns the configuration name of the color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor looks up a color by its configuration name (case-insensitive).
// An empty name yields ColorDefault.
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColorDefault, true
	}
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}

// palette holds the RGB values used by pixel frontends.
var palette = map[Color]color.RGBA{
	ColorDefault:       {0xff, 0xff, 0xff, 0xff},
	ColorRed:           {0xcd, 0x31, 0x31, 0xff},
	ColorGreen:         {0x4c, 0xaf, 0x50, 0xff},
	ColorYellow:        {0xe5, 0xc0, 0x2a, 0xff},
	ColorBlue:          {0x24, 0x72, 0xc8, 0xff},
	ColorMagenta:       {0xbc, 0x3f, 0xbc, 0xff},
	ColorCyan:          {0x11, 0xa8, 0xcd, 0xff},
	ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	ColorBrightRed:     {0xf1, 0x4c, 0x4c, 0xff},
	ColorBrightGreen:   {0x23, 0xd1, 0x8b, 0xff},
	ColorBrightYellow:  {0xf5, 0xf5, 0x43, 0xff},
	ColorBrightBlue:    {0x3b, 0x8e, 0xea, 0xff},
	ColorBrightMagenta: {0xd6, 0x70, 0xd6, 0xff},
	ColorBrightCyan:    {0x29, 0xb8, 0xdb, 0xff},
	ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
	ColorSky:           {0x70, 0xc5, 0xce, 0xff},
}

// RGBA returns the opaque RGB value of the color.
// Unknown colors render as ColorDefault.
func (c Color) RGBA() color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[ColorDefault]
}

// Shade scales the color's channels by f in [0, 1], keeping alpha.
func Shade(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
