package raster

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/glyphatlas"
)

// ErrUnknownBackend is returned by New for an unregistered backend name.
var ErrUnknownBackend = errors.New("raster: unknown backend")

// DefaultBackend is the backend New returns for an empty name.
const DefaultBackend = "ximage"

// Factory creates a new Rasterizer instance.
type Factory func() glyphatlas.Rasterizer

// registry holds registered backends.
// Register is expected to run from init functions, before any New call.
var registry = map[string]Factory{
	"ximage": func() glyphatlas.Rasterizer { return NewXImage() },
	"gotext": func() glyphatlas.Rasterizer { return NewGoText() },
}

// Register adds or replaces a named backend.
func Register(name string, f Factory) {
	registry[name] = f
}

// New creates a rasterizer by backend name. An empty name selects
// DefaultBackend.
func New(name string) (glyphatlas.Rasterizer, error) {
	if name == "" {
		name = DefaultBackend
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, name, Backends())
	}
	return f(), nil
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
