// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/glyphatlas"
)

// Memory is a CPU-side glyphatlas.Surface.
//
// R8 textures are *image.Alpha and RGBA8 textures are *image.RGBA.
// Memory is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	nextID   glyphatlas.TextureID
	textures map[glyphatlas.TextureID]draw.Image
	writes   uint64
}

// NewMemory creates an empty memory surface.
func NewMemory() *Memory {
	return &Memory{textures: make(map[glyphatlas.TextureID]draw.Image)}
}

// CreateTexture implements glyphatlas.Surface.
func (m *Memory) CreateTexture(width, height int, format glyphatlas.TextureFormat) (glyphatlas.TextureID, error) {
	if width <= 0 || height <= 0 {
		return glyphatlas.InvalidTextureID, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	var img draw.Image
	rect := image.Rect(0, 0, width, height)
	switch format {
	case glyphatlas.TextureFormatR8:
		img = image.NewAlpha(rect)
	case glyphatlas.TextureFormatRGBA8:
		img = image.NewRGBA(rect)
	default:
		return glyphatlas.InvalidTextureID, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.textures[m.nextID] = img
	return m.nextID, nil
}

// WriteTextureRegion implements glyphatlas.Surface.
// data holds width*height tightly packed pixels.
func (m *Memory) WriteTextureRegion(id glyphatlas.TextureID, x, y, width, height int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dst, ok := m.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	r := image.Rect(x, y, x+width, y+height)
	if err := checkRegion(dst.Bounds(), r); err != nil {
		return err
	}

	var src image.Image
	switch dst.(type) {
	case *image.Alpha:
		if err := checkData(data, width*height); err != nil {
			return err
		}
		src = &image.Alpha{Pix: data, Stride: width, Rect: image.Rect(0, 0, width, height)}
	case *image.RGBA:
		if err := checkData(data, width*height*4); err != nil {
			return err
		}
		src = &image.RGBA{Pix: data, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	}

	draw.Draw(dst, r, src, image.Point{}, draw.Src)
	m.writes++
	return nil
}

// ZeroFill implements glyphatlas.Surface.
func (m *Memory) ZeroFill(id glyphatlas.TextureID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch img := m.textures[id].(type) {
	case *image.Alpha:
		clear(img.Pix)
	case *image.RGBA:
		clear(img.Pix)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	return nil
}

// DestroyTexture implements glyphatlas.Surface.
func (m *Memory) DestroyTexture(id glyphatlas.TextureID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.textures, id)
}

// Image returns a copy of the texture contents.
func (m *Memory) Image(id glyphatlas.TextureID) (image.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.textures[id]
	if !ok {
		return nil, false
	}
	var dst draw.Image
	switch src.(type) {
	case *image.Alpha:
		dst = image.NewAlpha(src.Bounds())
	default:
		dst = image.NewRGBA(src.Bounds())
	}
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst, true
}

// WriteCount returns the number of successful region writes.
func (m *Memory) WriteCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Len returns the number of live textures.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.textures)
}

func checkRegion(bounds, r image.Rectangle) error {
	if r.Empty() || !r.In(bounds) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, bounds)
	}
	return nil
}

func checkData(data []byte, want int) error {
	if len(data) < want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortData, len(data), want)
	}
	return nil
}
