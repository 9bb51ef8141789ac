package raster

import (
	"errors"
	"image"
	"slices"
	"sync"
	"testing"

	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas"
)

// backends returns a fresh instance of every built-in backend.
func backends() map[string]glyphatlas.Rasterizer {
	return map[string]glyphatlas.Rasterizer{
		"ximage": NewXImage(),
		"gotext": NewGoText(),
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "*raster.XImage", false},
		{"ximage", "*raster.XImage", false},
		{"gotext", "*raster.GoText", false},
		{"freetype", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBackend) {
					t.Errorf("New(%q) error = %v, want ErrUnknownBackend", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) = %v", tt.name, err)
			}
			switch tt.want {
			case "*raster.XImage":
				if _, ok := r.(*XImage); !ok {
					t.Errorf("New(%q) = %T, want %s", tt.name, r, tt.want)
				}
			case "*raster.GoText":
				if _, ok := r.(*GoText); !ok {
					t.Errorf("New(%q) = %T, want %s", tt.name, r, tt.want)
				}
			}
		})
	}
}

func TestRegister(t *testing.T) {
	t.Cleanup(func() { delete(registry, "test") })

	Register("test", func() glyphatlas.Rasterizer { return NewGoText() })
	if !slices.Contains(Backends(), "test") {
		t.Errorf("Backends() = %v, want it to contain test", Backends())
	}
	if _, err := New("test"); err != nil {
		t.Errorf("New(test) = %v", err)
	}
}

func TestBackends_Metrics(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			m, err := r.Metrics(goregular.TTF)
			if err != nil {
				t.Fatalf("Metrics() = %v", err)
			}
			if m.UnitsPerEm != 2048 {
				t.Errorf("UnitsPerEm = %v, want 2048", m.UnitsPerEm)
			}
			if m.Ascent <= 0 || m.Ascent > m.UnitsPerEm*2 {
				t.Errorf("Ascent = %v, want a positive design-unit value", m.Ascent)
			}
			if m.Descent >= 0 {
				t.Errorf("Descent = %v, want negative", m.Descent)
			}
			if m.LineGap < 0 {
				t.Errorf("LineGap = %v, want >= 0", m.LineGap)
			}
		})
	}
}

func TestBackends_MetricsRejectGarbage(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			if _, err := r.Metrics([]byte("definitely not a font")); err == nil {
				t.Error("Metrics() on garbage should fail")
			}
			if r.HasGlyph([]byte("nope"), 'A') {
				t.Error("HasGlyph() on garbage should be false")
			}
			if _, ok := r.Rasterize([]byte("nope"), 'A', 14, glyphatlas.HintingFull); ok {
				t.Error("Rasterize() on garbage should fail")
			}
		})
	}
}

func TestBackends_RasterizeLetter(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			if !r.HasGlyph(gomono.TTF, 'A') {
				t.Fatal("HasGlyph('A') = false")
			}

			g, ok := r.Rasterize(gomono.TTF, 'A', 32, glyphatlas.HintingFull)
			if !ok {
				t.Fatal("Rasterize('A') = false")
			}
			p := g.Placement
			if p.Width <= 0 || p.Height <= 0 {
				t.Fatalf("placement = %+v, want ink", p)
			}
			if len(g.Bitmap) != p.Width*p.Height {
				t.Errorf("bitmap len = %d, want %d", len(g.Bitmap), p.Width*p.Height)
			}
			// A capital sits on the baseline and rises most of the em.
			if p.Top < 16 || p.Top > 32 {
				t.Errorf("Top = %d, want between 16 and 32", p.Top)
			}
			if p.Top-p.Height > 1 {
				t.Errorf("'A' should reach the baseline: top %d height %d", p.Top, p.Height)
			}

			var ink int
			for _, v := range g.Bitmap {
				if v != 0 {
					ink++
				}
			}
			if ink == 0 {
				t.Error("bitmap has no coverage")
			}
		})
	}
}

func TestBackends_ScalesWithSize(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			small, ok1 := r.Rasterize(goregular.TTF, 'M', 12, glyphatlas.HintingNone)
			large, ok2 := r.Rasterize(goregular.TTF, 'M', 48, glyphatlas.HintingNone)
			if !ok1 || !ok2 {
				t.Fatal("Rasterize('M') failed")
			}
			if large.Placement.Height <= small.Placement.Height*3 {
				t.Errorf("48px height %d should be about 4x 12px height %d",
					large.Placement.Height, small.Placement.Height)
			}
		})
	}
}

func TestBackends_Space(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			if !r.HasGlyph(goregular.TTF, ' ') {
				t.Fatal("HasGlyph(' ') = false")
			}
			g, ok := r.Rasterize(goregular.TTF, ' ', 14, glyphatlas.HintingFull)
			if !ok {
				t.Fatal("Rasterize(' ') = false, want an empty glyph")
			}
			if g.Placement.Width != 0 && g.Placement.Height != 0 {
				t.Errorf("space placement = %+v, want empty", g.Placement)
			}
		})
	}
}

func TestBackends_Unmapped(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			if r.HasGlyph(goregular.TTF, '\u4E2D') {
				t.Error("HasGlyph(U+4E2D) = true, Go fonts have no CJK coverage")
			}
		})
	}
}

func TestBackends_WithGlyphCache(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			surf := &countingSurface{}
			c, err := glyphatlas.New(glyphatlas.NewFontVariants(gomono.TTF), 16, r, surf)
			if err != nil {
				t.Fatalf("glyphatlas.New() = %v", err)
			}
			defer c.Close()

			c.PrecacheASCII()
			if err := c.Flush(); err != nil {
				t.Fatalf("Flush() = %v", err)
			}
			if surf.writes == 0 {
				t.Error("no glyphs uploaded")
			}
			// Printable ASCII, plus the full block when the font maps it.
			if c.Len() < 95 || c.Len() > 96 {
				t.Errorf("Len() = %d, want 95 or 96", c.Len())
			}
			if c.CellWidth() <= 0 || c.CellWidth() > 16 {
				t.Errorf("CellWidth() = %v", c.CellWidth())
			}
		})
	}
}

func TestBackends_ConcurrentUse(t *testing.T) {
	for name, r := range backends() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(size float32) {
					defer wg.Done()
					for c := 'a'; c <= 'z'; c++ {
						if _, ok := r.Rasterize(goregular.TTF, c, size, glyphatlas.HintingFull); !ok {
							t.Errorf("Rasterize(%q, %v) failed", c, size)
						}
					}
				}(float32(10 + i))
			}
			wg.Wait()
		})
	}
}

// countingSurface accepts every write and counts them.
type countingSurface struct {
	writes int
}

func (s *countingSurface) CreateTexture(int, int, glyphatlas.TextureFormat) (glyphatlas.TextureID, error) {
	return 1, nil
}

func (s *countingSurface) WriteTextureRegion(glyphatlas.TextureID, int, int, int, int, []byte) error {
	s.writes++
	return nil
}

func (s *countingSurface) ZeroFill(glyphatlas.TextureID) error { return nil }

func (s *countingSurface) DestroyTexture(glyphatlas.TextureID) {}

func TestXImage_FaceCacheBounded(t *testing.T) {
	x := NewXImage()
	for i := 0; i < maxFaces+8; i++ {
		if _, ok := x.Rasterize(gomono.TTF, 'A', float32(8+i), glyphatlas.HintingFull); !ok {
			t.Fatalf("Rasterize at size %d failed", 8+i)
		}
	}
	if n := x.faces.Len(); n != maxFaces {
		t.Errorf("faces.Len() = %d, want %d", n, maxFaces)
	}
	if x.fonts.Len() != 1 {
		t.Errorf("fonts.Len() = %d, want 1", x.fonts.Len())
	}

	// Evicted faces are rebuilt on demand.
	if _, ok := x.Rasterize(gomono.TTF, 'A', 8, glyphatlas.HintingFull); !ok {
		t.Error("Rasterize after eviction failed")
	}
}

func TestOutlineBounds(t *testing.T) {
	pt := func(x, y float32) opentype.SegmentPoint { return opentype.SegmentPoint{X: x, Y: y} }
	move := func(x, y float32) opentype.Segment {
		return opentype.Segment{Op: opentype.SegmentOpMoveTo, Args: [3]opentype.SegmentPoint{pt(x, y)}}
	}
	line := func(x, y float32) opentype.Segment {
		return opentype.Segment{Op: opentype.SegmentOpLineTo, Args: [3]opentype.SegmentPoint{pt(x, y)}}
	}

	tests := []struct {
		name  string
		segs  []opentype.Segment
		scale float32
		want  image.Rectangle
	}{
		{"empty", nil, 1, image.Rectangle{}},
		{
			"lines",
			[]opentype.Segment{move(1, 1), line(3, 1), line(3, 4)},
			2,
			image.Rect(2, -8, 6, -2),
		},
		{
			// The control point sits at y=10 but the arc peaks at y=5.
			"quad overshoot",
			[]opentype.Segment{
				move(0, 0),
				{Op: opentype.SegmentOpQuadTo, Args: [3]opentype.SegmentPoint{pt(5, 10), pt(10, 0)}},
				line(0, 0),
			},
			1,
			image.Rect(0, -5, 10, 0),
		},
		{
			// Both handles sit at y=8 but the arc peaks at y=6.
			"cubic overshoot",
			[]opentype.Segment{
				move(0, 0),
				{Op: opentype.SegmentOpCubeTo, Args: [3]opentype.SegmentPoint{pt(0, 8), pt(10, 8), pt(10, 0)}},
				line(0, 0),
			},
			1,
			image.Rect(0, -6, 10, 0),
		},
		{
			// Descending bowl: the extremum is a minimum below the baseline.
			"quad below baseline",
			[]opentype.Segment{
				move(0, 0),
				{Op: opentype.SegmentOpQuadTo, Args: [3]opentype.SegmentPoint{pt(4, -8), pt(8, 0)}},
			},
			1,
			image.Rect(0, 0, 8, 4),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outlineBounds(tt.segs, tt.scale); got != tt.want {
				t.Errorf("outlineBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoText_BitmapHasNoEmptyBorder(t *testing.T) {
	r := NewGoText()
	for _, ch := range "oOCS" {
		g, ok := r.Rasterize(goregular.TTF, ch, 64, glyphatlas.HintingNone)
		if !ok || g.Placement.Width == 0 {
			t.Fatalf("Rasterize(%q) = %v", ch, ok)
		}
		w, h := g.Placement.Width, g.Placement.Height
		rowInk := func(y int) bool { return slices.ContainsFunc(g.Bitmap[y*w:(y+1)*w], func(v byte) bool { return v != 0 }) }
		colInk := func(x int) bool {
			for y := 0; y < h; y++ {
				if g.Bitmap[y*w+x] != 0 {
					return true
				}
			}
			return false
		}
		// Allow one blank pixel for sub-pixel tangents on each side.
		if !rowInk(0) && !rowInk(1) {
			t.Errorf("%q: top rows are empty", ch)
		}
		if !rowInk(h-1) && !rowInk(h-2) {
			t.Errorf("%q: bottom rows are empty", ch)
		}
		if !colInk(0) && !colInk(1) {
			t.Errorf("%q: left columns are empty", ch)
		}
		if !colInk(w-1) && !colInk(w-2) {
			t.Errorf("%q: right columns are empty", ch)
		}
	}
}
