// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphatlas"
)

// HAL is a glyphatlas.Surface backed by gogpu/wgpu HAL textures.
//
// Textures are created with TextureBinding|CopyDst usage and a 2D view for
// sampling. The device and queue belong to the caller; HAL only destroys
// the textures it created.
//
// Thread Safety: resource bookkeeping is mutex-guarded, but HAL calls must
// follow the device's own threading rules.
type HAL struct {
	mu       sync.RWMutex
	device   hal.Device
	queue    hal.Queue
	nextID   glyphatlas.TextureID
	textures map[glyphatlas.TextureID]*halTexture
}

type halTexture struct {
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	format  glyphatlas.TextureFormat
}

// NewHAL creates a surface on an existing device and queue.
func NewHAL(device hal.Device, queue hal.Queue) (*HAL, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	return &HAL{
		device:   device,
		queue:    queue,
		textures: make(map[glyphatlas.TextureID]*halTexture),
	}, nil
}

// NewHALFromProvider creates a surface on a device shared by the host.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewHALFromProvider(provider gpucontext.DeviceProvider) (*HAL, error) {
	if provider == nil {
		return nil, ErrNoDevice
	}
	s, err := newHALFromAny(provider)
	if err != nil {
		return nil, err
	}
	info := provider.AdapterInfo()
	glyphatlas.Logger().Debug("surface: using shared device", "adapter", info.Name, "type", info.Type)
	return s, nil
}

func newHALFromAny(provider any) (*HAL, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoDevice)
	}
	return NewHAL(device, queue)
}

// CreateTexture implements glyphatlas.Surface.
func (s *HAL) CreateTexture(width, height int, format glyphatlas.TextureFormat) (glyphatlas.TextureID, error) {
	if width <= 0 || height <= 0 {
		return glyphatlas.InvalidTextureID, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	gpuFormat, ok := toGPUFormat(format)
	if !ok {
		return glyphatlas.InvalidTextureID, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID + 1
	label := fmt.Sprintf("glyph_atlas_%d", id)

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // checked positive above
			Height:             uint32(height), //nolint:gosec // checked positive above
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gpuFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return glyphatlas.InvalidTextureID, fmt.Errorf("surface: create atlas texture: %w", err)
	}

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gpuFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return glyphatlas.InvalidTextureID, fmt.Errorf("surface: create atlas texture view: %w", err)
	}

	s.nextID = id
	s.textures[id] = &halTexture{
		texture: tex,
		view:    view,
		width:   width,
		height:  height,
		format:  format,
	}
	glyphatlas.Logger().Debug("surface: atlas texture created", "id", id, "w", width, "h", height, "format", format)
	return id, nil
}

// WriteTextureRegion implements glyphatlas.Surface.
func (s *HAL) WriteTextureRegion(id glyphatlas.TextureID, x, y, width, height int, data []byte) error {
	s.mu.RLock()
	t, ok := s.textures[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}

	r := image.Rect(x, y, x+width, y+height)
	if err := checkRegion(image.Rect(0, 0, t.width, t.height), r); err != nil {
		return err
	}
	bpp := t.format.BytesPerPixel()
	n := width * height * bpp
	if err := checkData(data, n); err != nil {
		return err
	}

	return s.writeRegion(t, r, data[:n])
}

// ZeroFill implements glyphatlas.Surface.
func (s *HAL) ZeroFill(id glyphatlas.TextureID) error {
	s.mu.RLock()
	t, ok := s.textures[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}

	zeros := make([]byte, t.width*t.height*t.format.BytesPerPixel())
	return s.writeRegion(t, image.Rect(0, 0, t.width, t.height), zeros)
}

// DestroyTexture implements glyphatlas.Surface.
func (s *HAL) DestroyTexture(id glyphatlas.TextureID) {
	s.mu.Lock()
	t, ok := s.textures[id]
	delete(s.textures, id)
	s.mu.Unlock()

	if ok {
		s.destroy(t)
	}
}

// View returns the sampling view of a texture.
func (s *HAL) View(id glyphatlas.TextureID) (hal.TextureView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.textures[id]
	if !ok {
		return nil, false
	}
	return t.view, true
}

// Len returns the number of live textures.
func (s *HAL) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.textures)
}

// Close destroys every texture still owned by the surface.
// The device and queue are left untouched.
func (s *HAL) Close() {
	s.mu.Lock()
	textures := s.textures
	s.textures = make(map[glyphatlas.TextureID]*halTexture)
	s.mu.Unlock()

	for _, t := range textures {
		s.destroy(t)
	}
}

func (s *HAL) writeRegion(t *halTexture, r image.Rectangle, data []byte) error {
	bpp := t.format.BytesPerPixel()
	err := s.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(r.Min.X), Y: uint32(r.Min.Y), Z: 0}, //nolint:gosec // bounds checked
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(r.Dx() * bpp), //nolint:gosec // bounds checked
			RowsPerImage: uint32(r.Dy()),       //nolint:gosec // bounds checked
		},
		&hal.Extent3D{Width: uint32(r.Dx()), Height: uint32(r.Dy()), DepthOrArrayLayers: 1}, //nolint:gosec // bounds checked
	)
	if err != nil {
		return fmt.Errorf("surface: write texture: %w", err)
	}
	return nil
}

func (s *HAL) destroy(t *halTexture) {
	if t.view != nil {
		s.device.DestroyTextureView(t.view)
	}
	if t.texture != nil {
		s.device.DestroyTexture(t.texture)
	}
}

func toGPUFormat(f glyphatlas.TextureFormat) (gputypes.TextureFormat, bool) {
	switch f {
	case glyphatlas.TextureFormatR8:
		return gputypes.TextureFormatR8Unorm, true
	case glyphatlas.TextureFormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm, true
	default:
		return 0, false
	}
}
