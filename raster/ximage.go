package raster

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/internal/lru"
)

// XImage rasterizes glyphs with golang.org/x/image/font/opentype.
//
// XImage is safe for concurrent use.
type XImage struct {
	mu    sync.Mutex
	buf   sfnt.Buffer
	fonts *lru.Cache[fontKey, *opentype.Font]
	faces *lru.Cache[ximageFaceKey, font.Face]
}

type ximageFaceKey struct {
	font    fontKey
	size    float32
	hinting glyphatlas.Hinting
}

// NewXImage creates an x/image backend.
func NewXImage() *XImage {
	return &XImage{
		fonts: lru.New[fontKey, *opentype.Font](maxFonts, nil),
		faces: lru.New(maxFaces, func(_ ximageFaceKey, f font.Face) { _ = f.Close() }),
	}
}

// Metrics implements glyphatlas.Rasterizer.
// Values are read at ppem = unitsPerEm, which yields design units.
func (x *XImage) Metrics(data []byte) (glyphatlas.FontMetrics, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := x.parse(data)
	if err != nil {
		return glyphatlas.FontMetrics{}, err
	}

	upem := f.UnitsPerEm()
	m, err := f.Metrics(&x.buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return glyphatlas.FontMetrics{}, fmt.Errorf("raster: read font metrics: %w", err)
	}

	ascent := fixedToFloat32(m.Ascent)
	descent := fixedToFloat32(m.Descent) // x/image reports descent as positive
	lineGap := fixedToFloat32(m.Height) - ascent - descent
	return glyphatlas.FontMetrics{
		UnitsPerEm: float32(upem),
		Ascent:     ascent,
		Descent:    -descent,
		LineGap:    max(lineGap, 0),
	}, nil
}

// HasGlyph implements glyphatlas.Rasterizer.
func (x *XImage) HasGlyph(data []byte, r rune) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := x.parse(data)
	if err != nil {
		return false
	}
	idx, err := f.GlyphIndex(&x.buf, r)
	return err == nil && idx != 0
}

// Rasterize implements glyphatlas.Rasterizer.
func (x *XImage) Rasterize(data []byte, r rune, size float32, hinting glyphatlas.Hinting) (glyphatlas.RasterizedGlyph, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	face, err := x.face(data, size, hinting)
	if err != nil {
		glyphatlas.Logger().Debug("raster: ximage face", "size", size, "err", err)
		return glyphatlas.RasterizedGlyph{}, false
	}

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return glyphatlas.RasterizedGlyph{}, false
	}
	if dr.Empty() {
		return glyphatlas.RasterizedGlyph{}, true
	}

	// The face reuses its mask between calls; copy into a tight buffer.
	dst := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)

	return glyphatlas.RasterizedGlyph{
		Bitmap: dst.Pix,
		Placement: glyphatlas.Placement{
			Left:   dr.Min.X,
			Top:    -dr.Min.Y,
			Width:  dr.Dx(),
			Height: dr.Dy(),
		},
	}, true
}

// parse returns the cached parsed font for data. Caller holds x.mu.
func (x *XImage) parse(data []byte) (*opentype.Font, error) {
	key := keyOf(data)
	if f, ok := x.fonts.Get(key); ok {
		return f, nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	x.fonts.Add(key, f)
	return f, nil
}

// face returns a cached face for (data, size, hinting). Caller holds x.mu.
func (x *XImage) face(data []byte, size float32, hinting glyphatlas.Hinting) (font.Face, error) {
	key := ximageFaceKey{font: keyOf(data), size: size, hinting: hinting}
	if face, ok := x.faces.Get(key); ok {
		return face, nil
	}

	f, err := x.parse(data)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: toFontHinting(hinting),
	})
	if err != nil {
		return nil, fmt.Errorf("raster: create face: %w", err)
	}

	x.faces.Add(key, face)
	return face, nil
}

func toFontHinting(h glyphatlas.Hinting) font.Hinting {
	switch h {
	case glyphatlas.HintingNone:
		return font.HintingNone
	case glyphatlas.HintingVertical:
		return font.HintingVertical
	default:
		return font.HintingFull
	}
}

func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
