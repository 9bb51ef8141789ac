package glyphatlas

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphatlas/atlas"
)

const (
	// asciiFirst and asciiLast bound the printable ASCII range.
	asciiFirst = 32
	asciiLast  = 126

	// fullBlock is the block cursor glyph (U+2588).
	fullBlock = '\u2588'
)

// CacheStats holds cache statistics.
type CacheStats struct {
	// Hits counts lookups answered from the glyph map.
	Hits uint64
	// Misses counts lookups that were not in the glyph map.
	Misses uint64
	// Rasterizations counts calls into the rasterizer for a miss.
	Rasterizations uint64
	// Allocations counts atlas regions handed out.
	Allocations uint64
	// AtlasFull counts misses dropped because the atlas had no room.
	AtlasFull uint64
	// Uploads counts region writes issued by Flush.
	Uploads uint64
}

// GlyphCache rasterizes glyphs on demand, packs them into a single R8 atlas
// texture and reports where each glyph sits in a fixed-size terminal cell.
//
// Bitmaps produced by lookups are staged on the CPU and written to the
// texture by Flush, so a frame that misses many glyphs still performs a
// single upload pass. Call Flush after all lookups of a frame and before
// the atlas is sampled.
//
// The atlas never evicts. When it is full, new glyphs are not drawn until
// SetFontSize rebuilds everything.
//
// GlyphCache is NOT safe for concurrent use. All methods must be called from
// the goroutine that owns the Surface.
type GlyphCache struct {
	variants   *FontVariants
	rasterizer Rasterizer
	surface    Surface
	opts       cacheOptions

	fontSize    float32
	fontMetrics FontMetrics // Regular face, design units
	metrics     cellMetrics

	glyphs  map[GlyphKey]CachedGlyph
	packer  *atlas.ShelfPacker
	texture TextureID
	staging stagingBuffer

	// atlasFullLogged latches the exhaustion warning until the next reset.
	atlasFullLogged bool

	stats  CacheStats
	closed bool
}

// New creates a glyph cache for the given fonts at size pixels per em.
//
// Every variant is parsed up front; a variant the rasterizer rejects makes
// New fail with a *FontError. The atlas texture is created on s.
func New(variants *FontVariants, size float32, r Rasterizer, s Surface, opts ...Option) (*GlyphCache, error) {
	if variants == nil || len(variants.Regular()) == 0 {
		return nil, ErrNoRegularFont
	}
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFontSize, size)
	}
	if r == nil {
		return nil, ErrNilRasterizer
	}
	if s == nil {
		return nil, ErrNilSurface
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.atlasWidth <= 0 || o.atlasHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidAtlasSize, o.atlasWidth, o.atlasHeight)
	}

	var regular FontMetrics
	for _, style := range variants.styles() {
		fm, err := r.Metrics(variants.exact(style))
		if err != nil {
			return nil, &FontError{Style: style, Err: err}
		}
		if style == StyleRegular {
			regular = fm
		}
	}

	tex, err := s.CreateTexture(o.atlasWidth, o.atlasHeight, TextureFormatR8)
	if err != nil {
		return nil, fmt.Errorf("glyphatlas: create atlas texture: %w", err)
	}

	c := &GlyphCache{
		variants:    variants,
		rasterizer:  r,
		surface:     s,
		opts:        o,
		fontSize:    size,
		fontMetrics: regular,
		glyphs:      make(map[GlyphKey]CachedGlyph, 128),
		packer:      atlas.NewShelfPacker(o.atlasWidth, o.atlasHeight),
		texture:     tex,
	}
	c.updateMetrics()

	Logger().Info("glyph cache created",
		"size", size,
		"atlas_width", o.atlasWidth,
		"atlas_height", o.atlasHeight,
		"variants", len(variants.styles()),
		"line_height", c.metrics.lineHeight,
		"cell_width", c.metrics.cellWidth)

	if o.precache {
		c.PrecacheASCII()
	}
	return c, nil
}

// GetOrInsert returns the regular-style glyph for r, rasterizing it on a miss.
func (c *GlyphCache) GetOrInsert(r rune) (CachedGlyph, bool) {
	return c.GetOrInsertStyled(r, StyleRegular)
}

// GetOrInsertStyled returns the glyph for r in the given style at the
// current font size, rasterizing and staging it on a miss.
//
// It returns false when there is nothing to draw from the atlas: the font
// has no glyph for r, or the atlas is full. Neither case is cached, so a
// later call tries again. Glyphs without ink are cached as a zero
// CachedGlyph and returned with true.
func (c *GlyphCache) GetOrInsertStyled(r rune, style GlyphStyle) (CachedGlyph, bool) {
	if c.closed {
		return CachedGlyph{}, false
	}

	key := NewGlyphKey(r, c.fontSize, style)
	if g, ok := c.glyphs[key]; ok {
		c.stats.Hits++
		return g, true
	}
	c.stats.Misses++

	font := c.variants.Resolve(style)
	if !c.rasterizer.HasGlyph(font, r) {
		return CachedGlyph{}, false
	}

	c.stats.Rasterizations++
	img, ok := c.rasterizer.Rasterize(font, r, c.fontSize, c.opts.hinting)
	if !ok {
		return CachedGlyph{}, false
	}

	p := img.Placement
	if p.Width <= 0 || p.Height <= 0 {
		c.glyphs[key] = CachedGlyph{}
		return CachedGlyph{}, true
	}
	if len(img.Bitmap) < p.Width*p.Height {
		Logger().Warn("glyphatlas: short glyph bitmap",
			"glyph", key.String(), "got", len(img.Bitmap), "want", p.Width*p.Height)
		return CachedGlyph{}, false
	}

	x, y, ok := c.packer.Allocate(p.Width, p.Height)
	if !ok {
		c.stats.AtlasFull++
		c.logAtlasFull(key, p)
		return CachedGlyph{}, false
	}
	c.stats.Allocations++

	c.staging.stage(x, y, p.Width, p.Height, img.Bitmap)

	atlasW := float32(c.opts.atlasWidth)
	atlasH := float32(c.opts.atlasHeight)
	g := CachedGlyph{
		UVMin:   [2]float32{float32(x) / atlasW, float32(y) / atlasH},
		UVMax:   [2]float32{float32(x+p.Width) / atlasW, float32(y+p.Height) / atlasH},
		Width:   float32(p.Width),
		Height:  float32(p.Height),
		OffsetX: float32(p.Left),
		OffsetY: -float32(p.Top), // Top grows up from the baseline, cells grow down
	}
	c.glyphs[key] = g

	Logger().Debug("glyph rasterized",
		"glyph", key.String(), "x", x, "y", y, "w", p.Width, "h", p.Height)
	return g, true
}

// Lookup returns a cached glyph without rasterizing on a miss.
func (c *GlyphCache) Lookup(r rune, style GlyphStyle) (CachedGlyph, bool) {
	g, ok := c.glyphs[NewGlyphKey(r, c.fontSize, style)]
	return g, ok
}

// PositionChar places the regular-style glyph for r in the cell whose
// top-left corner is (cellX, cellY).
func (c *GlyphCache) PositionChar(r rune, cellX, cellY float32) (PositionedGlyph, bool) {
	return c.PositionCharStyled(r, cellX, cellY, StyleRegular)
}

// PositionCharStyled places the glyph for r in the cell whose top-left
// corner is (cellX, cellY), aligned to the cache's baseline.
// It returns false when there is nothing to draw.
func (c *GlyphCache) PositionCharStyled(r rune, cellX, cellY float32, style GlyphStyle) (PositionedGlyph, bool) {
	g, ok := c.GetOrInsertStyled(r, style)
	if !ok || g.IsEmpty() {
		return PositionedGlyph{}, false
	}

	return PositionedGlyph{
		X:      cellX + g.OffsetX,
		Y:      cellY + c.metrics.baselineOffset + g.OffsetY,
		Width:  g.Width,
		Height: g.Height,
		UVMin:  g.UVMin,
		UVMax:  g.UVMax,
	}, true
}

// Flush writes every staged bitmap into the atlas texture and empties the
// staging buffer.
//
// A write error stops the pass and is returned. Staged data is discarded
// either way; the affected glyphs stay cached but their atlas region keeps
// its previous contents.
func (c *GlyphCache) Flush() error {
	if c.closed {
		return ErrClosed
	}
	n := c.staging.len()
	if n == 0 {
		return nil
	}
	size := c.staging.size()

	err := c.staging.drain(func(u pendingUpload, data []byte) error {
		if err := c.surface.WriteTextureRegion(c.texture, u.x, u.y, u.width, u.height, data); err != nil {
			return fmt.Errorf("glyphatlas: upload %dx%d at (%d, %d): %w", u.width, u.height, u.x, u.y, err)
		}
		c.stats.Uploads++
		return nil
	})

	Logger().Debug("glyph atlas flushed", "uploads", n, "bytes", size, "err", err)
	return err
}

// PrecacheASCII rasterizes printable ASCII (U+0020 to U+007E) and the full
// block cursor glyph so the first frame does not pay for them.
func (c *GlyphCache) PrecacheASCII() {
	for r := rune(asciiFirst); r <= asciiLast; r++ {
		c.GetOrInsert(r)
	}
	c.GetOrInsert(fullBlock)
}

// SetFontSize rebuilds the cache for a new font size.
//
// Metrics are recomputed, every cached glyph is dropped, the packer is
// reset, the atlas texture is cleared and pending uploads are discarded.
// Callers re-run PrecacheASCII and Flush afterwards as needed.
func (c *GlyphCache) SetFontSize(size float32) error {
	if c.closed {
		return ErrClosed
	}
	if !validSize(size) {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, size)
	}

	old := c.fontSize
	c.fontSize = size
	c.updateMetrics()

	clear(c.glyphs)
	c.packer.Reset()
	c.staging.reset()
	c.atlasFullLogged = false

	if err := c.surface.ZeroFill(c.texture); err != nil {
		return fmt.Errorf("glyphatlas: clear atlas texture: %w", err)
	}

	Logger().Info("glyph cache font size changed",
		"from", old, "to", size,
		"line_height", c.metrics.lineHeight,
		"cell_width", c.metrics.cellWidth)
	return nil
}

// Close releases the atlas texture. The cache must not be used afterwards;
// lookups return false and Flush returns ErrClosed.
func (c *GlyphCache) Close() {
	if c.closed {
		return
	}
	c.surface.DestroyTexture(c.texture)
	c.texture = InvalidTextureID
	clear(c.glyphs)
	c.staging.reset()
	c.closed = true
}

// FontSize returns the current font size in pixels per em.
func (c *GlyphCache) FontSize() float32 {
	return c.fontSize
}

// LineHeight returns the cell height in pixels.
func (c *GlyphCache) LineHeight() float32 {
	return c.metrics.lineHeight
}

// CellWidth returns the monospace cell width in pixels.
func (c *GlyphCache) CellWidth() float32 {
	return c.metrics.cellWidth
}

// BaselineOffset returns the distance from the top of a cell to the baseline.
func (c *GlyphCache) BaselineOffset() float32 {
	return c.metrics.baselineOffset
}

// Texture returns the atlas texture on the cache's Surface.
func (c *GlyphCache) Texture() TextureID {
	return c.texture
}

// AtlasSize returns the atlas dimensions in pixels.
func (c *GlyphCache) AtlasSize() (width, height int) {
	return c.opts.atlasWidth, c.opts.atlasHeight
}

// Len returns the number of cached glyphs, including empty ones.
func (c *GlyphCache) Len() int {
	return len(c.glyphs)
}

// PendingUploads returns the number of bitmaps waiting for Flush.
func (c *GlyphCache) PendingUploads() int {
	return c.staging.len()
}

// Utilization returns the fraction of atlas area holding glyph pixels.
func (c *GlyphCache) Utilization() float64 {
	return c.packer.Utilization()
}

// Stats returns cache statistics.
func (c *GlyphCache) Stats() CacheStats {
	return c.stats
}

// Variants returns the fonts the cache rasterizes from.
func (c *GlyphCache) Variants() *FontVariants {
	return c.variants
}

// updateMetrics recomputes line and cell metrics for the current size.
func (c *GlyphCache) updateMetrics() {
	c.metrics = scaleMetrics(c.fontMetrics, c.fontSize)
	c.metrics.cellWidth = measureCellWidth(c.rasterizer, c.variants.Regular(), c.fontSize, c.opts.hinting)
}

// logAtlasFull reports an exhausted atlas once per reset.
func (c *GlyphCache) logAtlasFull(key GlyphKey, p Placement) {
	if c.atlasFullLogged {
		Logger().Debug("glyphatlas: atlas full, glyph dropped", "glyph", key.String())
		return
	}
	c.atlasFullLogged = true
	Logger().Warn("glyphatlas: atlas full, glyphs will not render until the font size changes",
		"glyph", key.String(),
		"w", p.Width, "h", p.Height,
		"cached", len(c.glyphs),
		"utilization", c.packer.Utilization())
}

func validSize(size float32) bool {
	f := float64(size)
	return size > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
