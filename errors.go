package glyphatlas

import "errors"

// Sentinel errors for glyphatlas package.
var (
	// ErrNoRegularFont is returned when no regular font data is provided.
	ErrNoRegularFont = errors.New("glyphatlas: regular font data is required")

	// ErrInvalidFontSize is returned for non-positive or NaN font sizes.
	ErrInvalidFontSize = errors.New("glyphatlas: font size must be positive")

	// ErrInvalidAtlasSize is returned for non-positive atlas dimensions.
	ErrInvalidAtlasSize = errors.New("glyphatlas: atlas dimensions must be positive")

	// ErrNilRasterizer is returned when New is called without a rasterizer.
	ErrNilRasterizer = errors.New("glyphatlas: rasterizer is nil")

	// ErrNilSurface is returned when New is called without a surface.
	ErrNilSurface = errors.New("glyphatlas: surface is nil")

	// ErrClosed is returned when operating on a closed cache.
	ErrClosed = errors.New("glyphatlas: cache is closed")
)

// FontError is returned when a font variant cannot be parsed.
type FontError struct {
	Style GlyphStyle
	Err   error
}

func (e *FontError) Error() string {
	return "glyphatlas: invalid " + e.Style.String() + " font: " + e.Err.Error()
}

func (e *FontError) Unwrap() error {
	return e.Err
}
