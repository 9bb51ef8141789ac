package glyphatlas

import "fmt"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Hinting selects the outline hinting mode used during rasterization.
type Hinting int

const (
	// HintingFull snaps outlines to the pixel grid on both axes.
	HintingFull Hinting = iota
	// HintingVertical snaps outlines vertically only.
	HintingVertical
	// HintingNone rasterizes outlines unmodified.
	HintingNone
)

// String returns the string representation of the hinting mode.
func (h Hinting) String() string {
	switch h {
	case HintingFull:
		return "Full"
	case HintingVertical:
		return "Vertical"
	case HintingNone:
		return "None"
	default:
		return unknownStr
	}
}

// FontMetrics holds font-level metrics in font design units.
type FontMetrics struct {
	// UnitsPerEm is the size of the em square in design units.
	UnitsPerEm float32

	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float32

	// Descent is the distance from the baseline to the bottom of the font (negative).
	Descent float32

	// LineGap is the recommended gap between lines.
	LineGap float32
}

// Placement describes where a glyph bitmap sits relative to the pen
// position on the baseline.
type Placement struct {
	// Left is the horizontal offset from the origin to the bitmap's left edge.
	Left int

	// Top is the distance from the baseline up to the bitmap's top edge.
	Top int

	// Width and Height are the bitmap dimensions in pixels.
	Width  int
	Height int
}

// RasterizedGlyph is an 8-bit alpha bitmap plus its placement.
type RasterizedGlyph struct {
	// Bitmap holds Width*Height coverage bytes, row-major, no padding.
	Bitmap []byte

	Placement Placement
}

// Rasterizer turns font data into glyph bitmaps.
//
// Implementations receive the raw font bytes on every call; they are free
// to cache parsed fonts keyed by the buffer. The buffers passed by a
// GlyphCache are owned by its FontVariants and never change.
type Rasterizer interface {
	// Metrics parses the font and returns its metrics in design units.
	// An error means the data is not a usable font.
	Metrics(font []byte) (FontMetrics, error)

	// HasGlyph reports whether the font maps r to a glyph.
	HasGlyph(font []byte, r rune) bool

	// Rasterize renders r at size pixels per em. It returns false if the
	// font has no glyph for r. A glyph without ink (such as space) is
	// returned with zero Width or Height.
	Rasterize(font []byte, r rune, size float32, hinting Hinting) (RasterizedGlyph, bool)
}

// TextureID identifies a texture owned by a Surface.
type TextureID uint64

// InvalidTextureID is the zero texture handle.
const InvalidTextureID TextureID = 0

// TextureFormat is the pixel format of a Surface texture.
type TextureFormat uint8

const (
	// TextureFormatR8 is single-channel 8-bit format, used for glyph coverage.
	TextureFormatR8 TextureFormat = iota

	// TextureFormatRGBA8 is the standard RGBA format with 8 bits per channel.
	TextureFormatRGBA8
)

// String returns a human-readable name for the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR8:
		return "R8"
	case TextureFormatRGBA8:
		return "RGBA8"
	default:
		return fmt.Sprintf("%s(%d)", unknownStr, f)
	}
}

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR8:
		return 1
	default:
		return 4
	}
}

// Surface is the GPU capability a GlyphCache uploads into.
//
// All calls happen on the goroutine that owns the GlyphCache. Writes must
// be visible to subsequent sampling once the call returns.
type Surface interface {
	// CreateTexture allocates a width x height texture.
	CreateTexture(width, height int, format TextureFormat) (TextureID, error)

	// WriteTextureRegion copies a tightly packed width x height block of
	// pixels into the texture at (x, y).
	WriteTextureRegion(id TextureID, x, y, width, height int, data []byte) error

	// ZeroFill clears the whole texture to zero.
	ZeroFill(id TextureID) error

	// DestroyTexture releases the texture. Unknown ids are ignored.
	DestroyTexture(id TextureID)
}
