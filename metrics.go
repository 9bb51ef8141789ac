package glyphatlas

import "math"

const (
	// verticalPaddingRatio is the extra line height, relative to the font
	// size, reserved for tall icon glyphs in patched terminal fonts.
	verticalPaddingRatio = 0.7

	// fallbackCellWidthRatio is the cell width used when 'M' cannot be measured.
	fallbackCellWidthRatio = 0.6

	// cellWidthReference is the glyph measured to derive the monospace cell width.
	cellWidthReference = 'M'
)

// cellMetrics holds the per-size layout values of a GlyphCache.
type cellMetrics struct {
	ascent          float32
	descent         float32 // Negative, below the baseline
	lineGap         float32
	verticalPadding float32
	lineHeight      float32
	baselineOffset  float32
	cellWidth       float32
}

// scaleMetrics derives line height and baseline from design-unit metrics.
//
//	lineHeight = ascent + |descent| + lineGap + size*0.7
//	baseline   = ascent + size*0.35
func scaleMetrics(fm FontMetrics, size float32) cellMetrics {
	var scale float32
	if fm.UnitsPerEm > 0 {
		scale = size / fm.UnitsPerEm
	}

	m := cellMetrics{
		ascent:          fm.Ascent * scale,
		descent:         fm.Descent * scale,
		lineGap:         fm.LineGap * scale,
		verticalPadding: size * verticalPaddingRatio,
	}
	m.lineHeight = m.ascent + float32(math.Abs(float64(m.descent))) + m.lineGap + m.verticalPadding
	m.baselineOffset = m.ascent + m.verticalPadding/2
	return m
}

// measureCellWidth returns the left bearing plus ink width of 'M' at size,
// or size*0.6 when the font has no usable 'M'.
func measureCellWidth(r Rasterizer, font []byte, size float32, hinting Hinting) float32 {
	fallback := size * fallbackCellWidthRatio

	if !r.HasGlyph(font, cellWidthReference) {
		return fallback
	}
	g, ok := r.Rasterize(font, cellWidthReference, size, hinting)
	if !ok || g.Placement.Width == 0 || g.Placement.Height == 0 {
		return fallback
	}

	w := float32(g.Placement.Left + g.Placement.Width)
	if w <= 0 {
		return fallback
	}
	return w
}
