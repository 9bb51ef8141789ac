package glyphatlas

import "testing"

func TestColumns(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'\u2588', 1},
		{'\u00E9', 1},
		{'\u4E2D', 2},
		{'\uFF48', 2}, // fullwidth latin
		{'\uFF71', 1}, // halfwidth katakana
		{'\u0301', 0},
		{'\t', 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Columns(tt.r); got != tt.want {
			t.Errorf("Columns(%U) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	ras := newFakeRasterizer()
	ras.setASCII()
	ras.setGlyph('M', fakeGlyph(7, 10, 1, 10)) // cell width 8
	ras.setGlyph('\u4E2D', fakeGlyph(14, 12, 1, 11))
	c := newTestCache(t, ras)

	if c.CellWidth() != 8 {
		t.Fatalf("CellWidth() = %v, want 8", c.CellWidth())
	}

	got, penX := c.PositionString(nil, "a \u4E2Db", 10, 0, StyleRegular)

	// Space has no ink but still advances.
	if len(got) != 3 {
		t.Fatalf("positioned %d glyphs, want 3", len(got))
	}
	if want := float32(10 + 8*5); penX != want {
		t.Errorf("pen x = %v, want %v", penX, want)
	}

	wantX := []float32{10 + 1, 26 + 1, 42 + 1}
	for i, p := range got {
		if p.X != wantX[i] {
			t.Errorf("glyph %d X = %v, want %v", i, p.X, wantX[i])
		}
	}
}

func TestPositionString_AppendsAndCombines(t *testing.T) {
	ras := newFakeRasterizer()
	ras.setASCII()
	ras.setGlyph('M', fakeGlyph(7, 10, 1, 10))
	ras.setGlyph('\u0301', fakeGlyph(3, 3, -4, 14))
	c := newTestCache(t, ras)

	dst := make([]PositionedGlyph, 1)
	got, penX := c.PositionString(dst, "e\u0301x", 0, 0, StyleBold)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 (1 existing + 3 new)", len(got))
	}
	if penX != 16 {
		t.Errorf("pen x = %v, want 16", penX)
	}
	// The combining accent sits in the cell of the 'e'.
	if got[2].X != -4 {
		t.Errorf("accent X = %v, want -4", got[2].X)
	}
	if got[3].X != 8+1 {
		t.Errorf("'x' X = %v, want 9", got[3].X)
	}
}
