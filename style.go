package glyphatlas

import (
	"fmt"
	"math"
)

// GlyphStyle selects the font variant a glyph is rasterized from.
type GlyphStyle struct {
	Bold   bool
	Italic bool
}

// Common styles.
var (
	StyleRegular    = GlyphStyle{}
	StyleBold       = GlyphStyle{Bold: true}
	StyleItalic     = GlyphStyle{Italic: true}
	StyleBoldItalic = GlyphStyle{Bold: true, Italic: true}
)

// String returns the string representation of the style.
func (s GlyphStyle) String() string {
	switch {
	case s.Bold && s.Italic:
		return "BoldItalic"
	case s.Bold:
		return "Bold"
	case s.Italic:
		return "Italic"
	default:
		return "Regular"
	}
}

// GlyphKey uniquely identifies a cached glyph.
//
// The font size is quantized to tenths of a pixel so that sizes which only
// differ by float noise share one entry.
type GlyphKey struct {
	// Char is the Unicode scalar value.
	Char rune

	// SizeTenths is the font size multiplied by 10 and rounded.
	SizeTenths uint16

	// Style is the requested font variant.
	Style GlyphStyle
}

// NewGlyphKey builds the cache key for a rune at the given size and style.
func NewGlyphKey(r rune, size float32, style GlyphStyle) GlyphKey {
	return GlyphKey{
		Char:       r,
		SizeTenths: sizeTenths(size),
		Style:      style,
	}
}

// String returns a human-readable form of the key, e.g. "'A'@14.0 Bold".
func (k GlyphKey) String() string {
	return fmt.Sprintf("%q@%d.%d %s", k.Char, k.SizeTenths/10, k.SizeTenths%10, k.Style)
}

// sizeTenths quantizes a font size to tenths, clamped to the uint16 range.
func sizeTenths(size float32) uint16 {
	t := math.Round(float64(size) * 10)
	switch {
	case math.IsNaN(t) || t <= 0:
		return 0
	case t >= math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(t)
	}
}
