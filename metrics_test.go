package glyphatlas

import "testing"

func TestScaleMetrics(t *testing.T) {
	tests := []struct {
		name         string
		fm           FontMetrics
		size         float32
		wantLine     float32
		wantBaseline float32
	}{
		{
			name:         "identity scale",
			fm:           FontMetrics{UnitsPerEm: 14, Ascent: 12, Descent: -3, LineGap: 1},
			size:         14,
			wantLine:     12 + 3 + 1 + 9.8,
			wantBaseline: 12 + 4.9,
		},
		{
			name:         "2048 upem",
			fm:           FontMetrics{UnitsPerEm: 2048, Ascent: 1536, Descent: -512, LineGap: 0},
			size:         16,
			wantLine:     12 + 4 + 0 + 11.2,
			wantBaseline: 12 + 5.6,
		},
		{
			name:         "positive descent is taken by magnitude",
			fm:           FontMetrics{UnitsPerEm: 10, Ascent: 8, Descent: 2, LineGap: 0},
			size:         10,
			wantLine:     8 + 2 + 7,
			wantBaseline: 8 + 3.5,
		},
		{
			name:         "no units per em",
			fm:           FontMetrics{Ascent: 8, Descent: -2},
			size:         10,
			wantLine:     7,
			wantBaseline: 3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := scaleMetrics(tt.fm, tt.size)
			if !approxEqual(m.lineHeight, tt.wantLine) {
				t.Errorf("lineHeight = %v, want %v", m.lineHeight, tt.wantLine)
			}
			if !approxEqual(m.baselineOffset, tt.wantBaseline) {
				t.Errorf("baselineOffset = %v, want %v", m.baselineOffset, tt.wantBaseline)
			}
		})
	}
}

func TestMeasureCellWidth(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeRasterizer)
		want  float32
	}{
		{
			name:  "left bearing plus width",
			setup: func(f *fakeRasterizer) { f.setGlyph('M', fakeGlyph(7, 10, 1, 10)) },
			want:  8,
		},
		{
			name:  "missing M falls back",
			setup: func(*fakeRasterizer) {},
			want:  20 * fallbackCellWidthRatio,
		},
		{
			name:  "empty M falls back",
			setup: func(f *fakeRasterizer) { f.setGlyph('M', fakeGlyph(0, 0, 0, 0)) },
			want:  20 * fallbackCellWidthRatio,
		},
		{
			name: "failed rasterization falls back",
			setup: func(f *fakeRasterizer) {
				f.setGlyph('M', fakeGlyph(7, 10, 1, 10))
				f.failing['M'] = true
			},
			want: 20 * fallbackCellWidthRatio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ras := newFakeRasterizer()
			tt.setup(ras)
			if got := measureCellWidth(ras, regularData, 20, HintingFull); !approxEqual(got, tt.want) {
				t.Errorf("measureCellWidth = %v, want %v", got, tt.want)
			}
		})
	}
}
