package glyphatlas

// DefaultAtlasSize is the default atlas dimension (1024x1024).
const DefaultAtlasSize = 1024

// Option configures a GlyphCache during creation.
//
// Example:
//
//	cache, err := glyphatlas.New(variants, 14, raster.NewXImage(), surf,
//	    glyphatlas.WithAtlasSize(2048, 2048),
//	    glyphatlas.WithHinting(glyphatlas.HintingNone),
//	)
type Option func(*cacheOptions)

// cacheOptions holds optional configuration for GlyphCache creation.
type cacheOptions struct {
	atlasWidth  int
	atlasHeight int
	hinting     Hinting
	precache    bool
}

// defaultOptions returns the default cache options.
func defaultOptions() cacheOptions {
	return cacheOptions{
		atlasWidth:  DefaultAtlasSize,
		atlasHeight: DefaultAtlasSize,
		hinting:     HintingFull,
	}
}

// WithAtlasSize sets the atlas texture dimensions in pixels.
// The atlas never grows: glyphs that do not fit are not drawn until the
// next SetFontSize.
func WithAtlasSize(width, height int) Option {
	return func(o *cacheOptions) {
		o.atlasWidth = width
		o.atlasHeight = height
	}
}

// WithHinting sets the hinting mode passed to the rasterizer.
func WithHinting(h Hinting) Option {
	return func(o *cacheOptions) {
		o.hinting = h
	}
}

// WithPrecache makes New call PrecacheASCII before returning.
// Callers still need to Flush before the first frame samples the atlas.
func WithPrecache() Option {
	return func(o *cacheOptions) {
		o.precache = true
	}
}
