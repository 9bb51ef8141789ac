// Package raster provides glyphatlas.Rasterizer backends.
//
// Two backends are registered by default:
//
//   - "ximage" (default): golang.org/x/image/font/opentype faces. Supports
//     hinting and matches what most Go programs draw text with.
//   - "gotext": github.com/go-text/typesetting outlines scan-converted with
//     golang.org/x/image/vector. Hinting is ignored.
//
// Both backends parse each distinct font buffer once and keep the result
// keyed by the buffer identity, so callers should pass the same slice for
// the same font (glyphatlas.FontVariants does). A backend value may be
// shared between several glyph caches.
//
// Usage:
//
//	ras, err := raster.New("gotext")
//	if err != nil {
//	    return err
//	}
//	cache, err := glyphatlas.New(variants, 14, ras, surf)
package raster
