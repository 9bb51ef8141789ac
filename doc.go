// Package glyphatlas caches rasterized glyphs in a GPU texture atlas for
// monospace terminal text.
//
// # Overview
//
// A GlyphCache turns (character, size, style) requests into regions of a
// single-channel atlas texture. Glyphs are rasterized on first use, packed
// with a shelf allocator, and staged in CPU memory until Flush copies them
// to the GPU in one batch per frame. Every glyph is positioned against one
// shared baseline, so mixed styles and fallback glyphs line up in a row of
// cells.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glyphatlas"
//	    "github.com/gogpu/glyphatlas/raster"
//	    "github.com/gogpu/glyphatlas/surface"
//	)
//
//	variants := glyphatlas.NewFontVariants(regular).WithBold(bold)
//	cache, err := glyphatlas.New(variants, 14, raster.NewXImage(), surface.NewMemory())
//	if err != nil {
//	    return err
//	}
//	defer cache.Close()
//
//	cache.PrecacheASCII()
//	// Per frame:
//	glyphs, _ := cache.PositionString(nil, "hello", 0, 0, glyphatlas.StyleRegular)
//	if err := cache.Flush(); err != nil {
//	    return err
//	}
//	// Draw one quad per entry in glyphs, sampling cache.Texture().
//
// # Architecture
//
// The package is split into:
//   - glyphatlas (root): GlyphCache, FontVariants, cell metrics and layout
//   - atlas: the shelf packer that assigns atlas rectangles
//   - raster: Rasterizer backends (golang.org/x/image and go-text)
//   - surface: Surface backends (gogpu/wgpu HAL textures and CPU memory)
//   - fontload: font discovery by family name
//
// # Atlas Lifetime
//
// The atlas never evicts and never grows. When it fills up, new glyphs
// are reported as missing and a warning is logged once. SetFontSize clears
// the cache, zeroes the texture and starts packing from scratch.
//
// # Thread Safety
//
// GlyphCache is not safe for concurrent use. It is meant to be owned by
// the render loop. Rasterizer and Surface implementations in this module
// are safe for concurrent use.
//
// # Logging
//
// Logging is disabled by default. See SetLogger.
package glyphatlas
