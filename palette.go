package evergreen

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Scene colors shared by the presentation shells.
var (
	EmeraldDeep  = mustHex("#002415")
	EmeraldLite  = mustHex("#005c38")
	GoldMetallic = mustHex("#FFD700")
	GoldRose     = mustHex("#C5A059")
	Void         = mustHex("#000502")
)

// GiftPalette holds the wrapping-paper colors drawn for bulk particles.
var GiftPalette = []Color{
	mustHex("#8a0000"), // deep red
	mustHex("#003311"), // deep green
	mustHex("#d4af37"), // gold
	mustHex("#ffffff"), // silver
	mustHex("#1a1a1a"), // black
}

// NeonPalette holds the ornament colors drawn for glow particles.
var NeonPalette = []Color{
	mustHex("#ff00ff"), // magenta
	mustHex("#00ffff"), // cyan
	mustHex("#ffff00"), // yellow
	mustHex("#ff3333"), // red
	mustHex("#33ff33"), // lime
}

// ParseColor parses a "#rrggbb" (or "#rgb") hex string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// Blend mixes c toward o by t in RGB space.
func (c Color) Blend(o Color, t float64) Color {
	b := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: o.R, G: o.G, B: o.B}, t)
	return Color{R: b.R, G: b.G, B: b.B}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func mustHex(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// paletteFor returns the palette a category draws from. Star has none.
func paletteFor(c Category) []Color {
	switch c {
	case CategoryBulk:
		return GiftPalette
	case CategoryGlow:
		return NeonPalette
	default:
		return nil
	}
}
