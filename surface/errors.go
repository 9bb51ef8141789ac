// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

var (
	// ErrInvalidSize is returned for non-positive texture dimensions.
	ErrInvalidSize = errors.New("surface: invalid texture size")

	// ErrUnsupportedFormat is returned for texture formats a backend cannot create.
	ErrUnsupportedFormat = errors.New("surface: unsupported texture format")

	// ErrUnknownTexture is returned for IDs that were never created or are destroyed.
	ErrUnknownTexture = errors.New("surface: unknown texture")

	// ErrOutOfBounds is returned when a write region is empty or leaves the texture.
	ErrOutOfBounds = errors.New("surface: region out of bounds")

	// ErrShortData is returned when a write carries fewer bytes than the region needs.
	ErrShortData = errors.New("surface: not enough pixel data")

	// ErrNoDevice is returned when a HAL surface has no device or queue.
	ErrNoDevice = errors.New("surface: no HAL device")

	// ErrNoBackendAvailable is returned when no registered backend can be created.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}
