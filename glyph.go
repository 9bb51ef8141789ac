package glyphatlas

// CachedGlyph is a glyph's location in the atlas plus the metrics needed
// to place it in a monospace cell.
type CachedGlyph struct {
	// UVMin and UVMax are normalized atlas coordinates (0..1).
	UVMin [2]float32
	UVMax [2]float32

	// Width and Height are the bitmap size in pixels.
	Width  float32
	Height float32

	// OffsetX and OffsetY move the bitmap from the pen position on the
	// baseline to its top-left corner. OffsetY is negative for ink above
	// the baseline because cell coordinates grow downward.
	OffsetX float32
	OffsetY float32
}

// IsEmpty reports whether the glyph has no ink (such as space).
func (g CachedGlyph) IsEmpty() bool {
	return g.Width == 0 || g.Height == 0
}

// PositionedGlyph is a glyph placed on screen, ready for an instanced quad.
type PositionedGlyph struct {
	// X, Y is the top-left corner of the bitmap in screen pixels.
	X, Y float32

	// Width and Height are the bitmap size in pixels.
	Width  float32
	Height float32

	// UVMin and UVMax are normalized atlas coordinates.
	UVMin [2]float32
	UVMax [2]float32
}
