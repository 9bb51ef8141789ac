package raster

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/internal/lru"
)

// GoText rasterizes glyph outlines read with github.com/go-text/typesetting.
//
// Outlines are scaled to the requested size and filled with a
// golang.org/x/image/vector rasterizer using the nonzero rule. go-text has
// no hinter, so the hinting argument is ignored.
//
// GoText is safe for concurrent use.
type GoText struct {
	mu    sync.Mutex
	faces *lru.Cache[fontKey, *gotextfont.Face]
	rast  vector.Rasterizer
}

// NewGoText creates a go-text backend.
func NewGoText() *GoText {
	return &GoText{faces: lru.New[fontKey, *gotextfont.Face](maxFonts, nil)}
}

// Metrics implements glyphatlas.Rasterizer.
func (g *GoText) Metrics(data []byte) (glyphatlas.FontMetrics, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	face, err := g.parse(data)
	if err != nil {
		return glyphatlas.FontMetrics{}, err
	}

	upem := float32(face.Upem())
	ext, ok := face.FontHExtents()
	if !ok {
		// No hhea/OS2 extents; use the usual 80/20 split of the em.
		ext = gotextfont.FontExtents{Ascender: upem * 0.8, Descender: -upem * 0.2}
	}
	return glyphatlas.FontMetrics{
		UnitsPerEm: upem,
		Ascent:     ext.Ascender,
		Descent:    -float32(math.Abs(float64(ext.Descender))),
		LineGap:    max(ext.LineGap, 0),
	}, nil
}

// HasGlyph implements glyphatlas.Rasterizer.
func (g *GoText) HasGlyph(data []byte, r rune) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	face, err := g.parse(data)
	if err != nil {
		return false
	}
	gid, ok := face.NominalGlyph(r)
	return ok && gid != 0
}

// Rasterize implements glyphatlas.Rasterizer.
func (g *GoText) Rasterize(data []byte, r rune, size float32, _ glyphatlas.Hinting) (glyphatlas.RasterizedGlyph, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	face, err := g.parse(data)
	if err != nil {
		return glyphatlas.RasterizedGlyph{}, false
	}
	gid, ok := face.NominalGlyph(r)
	if !ok {
		return glyphatlas.RasterizedGlyph{}, false
	}

	outline, ok := face.GlyphData(gid).(gotextfont.GlyphOutline)
	if !ok {
		// Bitmap and SVG glyphs are not supported.
		return glyphatlas.RasterizedGlyph{}, false
	}
	if len(outline.Segments) == 0 {
		return glyphatlas.RasterizedGlyph{}, true
	}

	scale := size / float32(face.Upem())
	bounds := outlineBounds(outline.Segments, scale)
	if bounds.Empty() {
		return glyphatlas.RasterizedGlyph{}, true
	}

	w, h := bounds.Dx(), bounds.Dy()
	g.rast.Reset(w, h)
	ox, oy := float32(-bounds.Min.X), float32(-bounds.Min.Y)
	pt := func(p opentype.SegmentPoint) (float32, float32) {
		return p.X*scale + ox, -p.Y*scale + oy
	}

	started := false
	for _, s := range outline.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if started {
				g.rast.ClosePath()
			}
			started = true
			g.rast.MoveTo(pt(s.Args[0]))
		case opentype.SegmentOpLineTo:
			g.rast.LineTo(pt(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			g.rast.QuadTo(bx, by, cx, cy)
		case opentype.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			g.rast.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if started {
		g.rast.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	g.rast.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return glyphatlas.RasterizedGlyph{
		Bitmap: dst.Pix,
		Placement: glyphatlas.Placement{
			Left:   bounds.Min.X,
			Top:    -bounds.Min.Y,
			Width:  w,
			Height: h,
		},
	}, true
}

// parse returns the cached face for data. Caller holds g.mu.
func (g *GoText) parse(data []byte) (*gotextfont.Face, error) {
	key := keyOf(data)
	if face, ok := g.faces.Get(key); ok {
		return face, nil
	}
	face, err := gotextfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	g.faces.Add(key, face)
	return face, nil
}

// outlineBounds returns the pixel box, y down, covering the ink of the
// scaled outline. Off-curve control points only contribute where a curve
// actually reaches, so overshooting handles do not widen the box.
func outlineBounds(segs []opentype.Segment, scale float32) image.Rectangle {
	var b extent
	var cur opentype.SegmentPoint
	for _, s := range segs {
		switch s.Op {
		case opentype.SegmentOpMoveTo, opentype.SegmentOpLineTo:
			cur = s.Args[0]
		case opentype.SegmentOpQuadTo:
			p0, p1, p2 := cur, s.Args[0], s.Args[1]
			for _, t := range quadExtrema(p0, p1, p2) {
				mt := 1 - t
				b.add(
					mt*mt*p0.X+2*mt*t*p1.X+t*t*p2.X,
					mt*mt*p0.Y+2*mt*t*p1.Y+t*t*p2.Y,
				)
			}
			cur = p2
		case opentype.SegmentOpCubeTo:
			p0, p1, p2, p3 := cur, s.Args[0], s.Args[1], s.Args[2]
			for _, t := range cubicExtrema(p0, p1, p2, p3) {
				mt := 1 - t
				a, bb, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				b.add(
					a*p0.X+bb*p1.X+c*p2.X+d*p3.X,
					a*p0.Y+bb*p1.Y+c*p2.Y+d*p3.Y,
				)
			}
			cur = p3
		}
		b.add(cur.X, cur.Y)
	}
	if !b.ok {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(float64(b.minX*scale))),
		int(math.Floor(float64(-b.maxY*scale))),
		int(math.Ceil(float64(b.maxX*scale))),
		int(math.Ceil(float64(-b.minY*scale))),
	)
}

// extent is a bounding box in font units, y up.
type extent struct {
	minX, minY, maxX, maxY float32
	ok                     bool
}

func (e *extent) add(x, y float32) {
	if !e.ok {
		*e = extent{minX: x, minY: y, maxX: x, maxY: y, ok: true}
		return
	}
	e.minX, e.maxX = min(e.minX, x), max(e.maxX, x)
	e.minY, e.maxY = min(e.minY, y), max(e.maxY, y)
}

// quadExtrema returns the curve parameters in (0, 1) where a quadratic
// Bezier turns in x or y.
func quadExtrema(p0, p1, p2 opentype.SegmentPoint) []float32 {
	var ts []float32
	for _, c := range [2][3]float32{{p0.X, p1.X, p2.X}, {p0.Y, p1.Y, p2.Y}} {
		d := c[0] - 2*c[1] + c[2]
		if d == 0 {
			continue
		}
		if t := (c[0] - c[1]) / d; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// cubicExtrema returns the curve parameters in (0, 1) where a cubic Bezier
// turns in x or y.
func cubicExtrema(p0, p1, p2, p3 opentype.SegmentPoint) []float32 {
	var ts []float32
	for _, c := range [2][4]float32{{p0.X, p1.X, p2.X, p3.X}, {p0.Y, p1.Y, p2.Y, p3.Y}} {
		// The derivative, divided by 3, is a*t^2 + b*t + k.
		p, q, r := c[1]-c[0], c[2]-c[1], c[3]-c[2]
		a, b, k := p-2*q+r, 2*(q-p), p
		if math.Abs(float64(a)) < 1e-6 {
			if b != 0 {
				ts = appendUnit(ts, -k/b)
			}
			continue
		}
		disc := float64(b*b - 4*a*k)
		if disc < 0 {
			continue
		}
		sq := float32(math.Sqrt(disc))
		ts = appendUnit(ts, (-b+sq)/(2*a))
		ts = appendUnit(ts, (-b-sq)/(2*a))
	}
	return ts
}

func appendUnit(ts []float32, t float32) []float32 {
	if t > 0 && t < 1 {
		return append(ts, t)
	}
	return ts
}
