// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides glyphatlas.Surface backends that own the atlas
// texture.
//
// # Backends
//
//   - Memory: CPU textures backed by *image.Alpha (R8) or *image.RGBA.
//     Used headless, in tests, and by tools that dump the atlas.
//   - HAL: GPU textures created on a gogpu/wgpu HAL device. Each texture
//     gets a 2D view that a renderer binds for sampling. Uploads go through
//     queue.WriteTexture.
//
// # Device sharing
//
// A HAL surface never creates its own device. The host passes one in,
// either directly with NewHAL or through a gpucontext.DeviceProvider that
// also exposes HalDevice() and HalQueue():
//
//	surf, err := surface.NewHALFromProvider(app.DeviceProvider())
//	if err != nil {
//	    return err
//	}
//	cache, err := glyphatlas.New(variants, 14, raster.NewXImage(), surf)
//
// # Registry
//
// Backends are registered by name and priority, like the surface registry
// of the gg renderer:
//
//	surf, err := surface.New(surface.Options{Provider: provider})
//
// picks HAL when a device is available and falls back to Memory.
//
// # Shader
//
// GlyphShaderWGSL holds the instanced glyph quad shader that samples the R8
// atlas. GlyphShaderSPIRV compiles it with naga.
package surface
