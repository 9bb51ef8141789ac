package glyphatlas

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// fakeRasterizer serves canned glyphs. Fonts are identified by their bytes,
// so tests can tell which variant a glyph came from.
type fakeRasterizer struct {
	metrics  FontMetrics
	glyphs   map[rune]RasterizedGlyph
	failing  map[rune]bool
	badFonts map[string]error

	calls []rasterCall
}

type rasterCall struct {
	font    string
	r       rune
	size    float32
	hinting Hinting
}

func newFakeRasterizer() *fakeRasterizer {
	return &fakeRasterizer{
		metrics:  FontMetrics{UnitsPerEm: 14, Ascent: 12, Descent: -3, LineGap: 1},
		glyphs:   make(map[rune]RasterizedGlyph),
		failing:  make(map[rune]bool),
		badFonts: make(map[string]error),
	}
}

// fakeGlyph returns a width x height glyph whose bitmap is non-zero and
// differs per pixel.
func fakeGlyph(width, height, left, top int) RasterizedGlyph {
	bitmap := make([]byte, width*height)
	for i := range bitmap {
		bitmap[i] = byte(i%251 + 1)
	}
	return RasterizedGlyph{
		Bitmap:    bitmap,
		Placement: Placement{Left: left, Top: top, Width: width, Height: height},
	}
}

func (f *fakeRasterizer) setGlyph(r rune, g RasterizedGlyph) {
	f.glyphs[r] = g
}

// setASCII maps printable ASCII and the full block. Space has no ink.
func (f *fakeRasterizer) setASCII() {
	for r := rune(asciiFirst); r <= asciiLast; r++ {
		f.setGlyph(r, fakeGlyph(6, 10, 1, 10))
	}
	f.setGlyph(' ', fakeGlyph(0, 0, 0, 0))
	f.setGlyph(fullBlock, fakeGlyph(8, 20, 0, 15))
}

// rasterizations returns how often r was rasterized, in any font.
func (f *fakeRasterizer) rasterizations(r rune) int {
	n := 0
	for _, c := range f.calls {
		if c.r == r {
			n++
		}
	}
	return n
}

func (f *fakeRasterizer) Metrics(font []byte) (FontMetrics, error) {
	if err, ok := f.badFonts[string(font)]; ok {
		return FontMetrics{}, err
	}
	return f.metrics, nil
}

func (f *fakeRasterizer) HasGlyph(_ []byte, r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

func (f *fakeRasterizer) Rasterize(font []byte, r rune, size float32, hinting Hinting) (RasterizedGlyph, bool) {
	f.calls = append(f.calls, rasterCall{font: string(font), r: r, size: size, hinting: hinting})
	if f.failing[r] {
		return RasterizedGlyph{}, false
	}
	g, ok := f.glyphs[r]
	if !ok {
		return RasterizedGlyph{}, false
	}
	// Hand out a fresh copy so the cache cannot alias the canned bitmap.
	g.Bitmap = append([]byte(nil), g.Bitmap...)
	return g, true
}

// fakeSurface records every texture operation.
type fakeSurface struct {
	nextID   TextureID
	textures map[TextureID]fakeTexture

	writes    []surfaceWrite
	zeroFills int
	destroyed []TextureID

	createErr   error
	writeErr    error
	failWriteAt int // 1-based index of the write that fails; 0 fails none
	zeroErr     error
}

type fakeTexture struct {
	width, height int
	format        TextureFormat
}

type surfaceWrite struct {
	id            TextureID
	x, y          int
	width, height int
	data          []byte
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{textures: make(map[TextureID]fakeTexture)}
}

func (s *fakeSurface) CreateTexture(width, height int, format TextureFormat) (TextureID, error) {
	if s.createErr != nil {
		return InvalidTextureID, s.createErr
	}
	s.nextID++
	s.textures[s.nextID] = fakeTexture{width: width, height: height, format: format}
	return s.nextID, nil
}

func (s *fakeSurface) WriteTextureRegion(id TextureID, x, y, width, height int, data []byte) error {
	if _, ok := s.textures[id]; !ok {
		return fmt.Errorf("unknown texture %d", id)
	}
	if s.failWriteAt > 0 && len(s.writes)+1 == s.failWriteAt {
		s.failWriteAt = 0
		return s.writeErr
	}
	s.writes = append(s.writes, surfaceWrite{
		id: id, x: x, y: y, width: width, height: height,
		data: append([]byte(nil), data...),
	})
	return nil
}

func (s *fakeSurface) ZeroFill(id TextureID) error {
	if s.zeroErr != nil {
		return s.zeroErr
	}
	if _, ok := s.textures[id]; !ok {
		return errors.New("unknown texture")
	}
	s.zeroFills++
	return nil
}

func (s *fakeSurface) DestroyTexture(id TextureID) {
	delete(s.textures, id)
	s.destroyed = append(s.destroyed, id)
}

// newTestCache builds a regular-only cache at 14px on a fake surface.
func newTestCache(t *testing.T, ras *fakeRasterizer, opts ...Option) *GlyphCache {
	t.Helper()
	c, _ := newTestCacheWith(t, NewFontVariants(regularData), ras, opts...)
	return c
}

func newTestCacheWith(t *testing.T, v *FontVariants, ras *fakeRasterizer, opts ...Option) (*GlyphCache, *fakeSurface) {
	t.Helper()
	surf := newFakeSurface()
	c, err := New(v, 14, ras, surf, opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(c.Close)
	return c, surf
}

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}
