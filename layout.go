package glyphatlas

import (
	"unicode"

	"golang.org/x/text/width"
)

// Columns returns the number of terminal cells r occupies: 2 for East Asian
// wide and fullwidth runes, 0 for combining marks and control characters,
// 1 otherwise.
func Columns(r rune) int {
	if r == 0 || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.IsControl(r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// PositionString lays s out on one row starting at pen position (x, y),
// appending a PositionedGlyph for every rune with ink to dst.
//
// The pen advances by CellWidth times Columns(r) per rune, so wide runes
// take two cells and combining marks overlay the previous cell. No shaping
// is done. It returns the extended slice and the final pen x.
func (c *GlyphCache) PositionString(dst []PositionedGlyph, s string, x, y float32, style GlyphStyle) ([]PositionedGlyph, float32) {
	cell := c.CellWidth()
	penX := x
	prevX := x
	for _, r := range s {
		cols := Columns(r)
		cellX := penX
		if cols == 0 {
			cellX = prevX
		}
		if p, ok := c.PositionCharStyled(r, cellX, y, style); ok {
			dst = append(dst, p)
		}
		if cols > 0 {
			prevX = penX
			penX += cell * float32(cols)
		}
	}
	return dst, penX
}
