// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"sync"

	"github.com/gogpu/glyphatlas"
)

// Options configures backend creation.
type Options struct {
	// Provider supplies a shared GPU device. It must implement
	// HalDevice() any and HalQueue() any. Nil means no GPU.
	Provider any
}

// Factory creates a surface with the given options.
// Implementations return an error when the options cannot serve them, so
// that New can move on to the next backend.
type Factory func(opts Options) (glyphatlas.Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates surface instances.
	Factory Factory
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered surface backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("vulkan-direct", 100, vulkanFactory)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory) {
	globalRegistry.Register(name, priority, factory)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// New creates a surface using the highest priority backend that accepts opts.
func New(opts Options) (glyphatlas.Surface, error) {
	return globalRegistry.New(opts)
}

// NewByName creates a surface using a specific named backend.
func NewByName(name string, opts Options) (glyphatlas.Surface, error) {
	return globalRegistry.NewByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &RegistryEntry{
		Name:     name,
		Priority: priority,
		Factory:  factory,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// New creates a surface using the best backend that accepts opts.
func (r *Registry) New(opts Options) (glyphatlas.Surface, error) {
	r.mu.RLock()
	names := r.sortedNames()
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	// Try each backend in priority order
	var lastErr error
	for _, name := range names {
		s, err := r.NewByName(name, opts)
		if err == nil {
			glyphatlas.Logger().Debug("surface: backend selected", "name", name)
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewByName creates a surface using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (glyphatlas.Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// then by name. Must be called with lock held.
func (r *Registry) sortedNames() []string {
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// init registers the built-in backends.
func init() {
	Register("hal", 100, func(opts Options) (glyphatlas.Surface, error) {
		if opts.Provider == nil {
			return nil, ErrNoDevice
		}
		return newHALFromAny(opts.Provider)
	})
	Register("memory", 10, func(Options) (glyphatlas.Surface, error) {
		return NewMemory(), nil
	})
}
