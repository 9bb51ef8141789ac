// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// GlyphShaderWGSL is the instanced glyph quad shader. Entry points are
// vs_main and fs_main. Bindings in group 0: viewport uniform, R8 atlas
// texture view, sampler. Per-instance vertex attributes: pixel rect,
// UV rect, color.
//
//go:embed shaders/glyph_quad.wgsl
var GlyphShaderWGSL string

// GlyphShaderSPIRV compiles GlyphShaderWGSL to SPIR-V words.
func GlyphShaderSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(GlyphShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("surface: compile glyph shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// CreateGlyphShaderModule compiles the glyph shader and creates a shader
// module on the surface's device.
func (s *HAL) CreateGlyphShaderModule() (hal.ShaderModule, error) {
	code, err := GlyphShaderSPIRV()
	if err != nil {
		return nil, err
	}
	module, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "glyph_quad",
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("surface: create glyph shader module: %w", err)
	}
	return module, nil
}
