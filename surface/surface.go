// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Handle is an opaque reference to an output surface.
// Handles are immutable values; equality is identity.
type Handle uint64

// Nil is the zero Handle. No provider hands it out.
const Nil Handle = 0

var lastHandle atomic.Uint64

// NewHandle allocates a Handle distinct from every other Handle allocated
// in this process. Providers call it when creating a surface.
func NewHandle() Handle {
	return Handle(lastHandle.Add(1))
}

// String returns a debug representation such as "surface#3".
func (h Handle) String() string {
	return fmt.Sprintf("surface#%d", uint64(h))
}

// Provider supplies the drawing primitives the frame finalizer needs.
//
// Coordinates are pixels with the origin at the top-left corner and rows
// increasing downward. Endpoints may lie outside the surface; providers
// clip. All methods fail with an error wrapping ErrUnknownSurface for a
// handle the provider does not own.
type Provider interface {
	// Size returns the surface dimensions in pixels.
	Size(s Handle) (width, height int, err error)

	// Clear resets the surface to its background.
	Clear(s Handle) error

	// DrawLine draws the segment (x0, y0)-(x1, y1), endpoints included.
	DrawLine(s Handle, x0, y0, x1, y1 int) error

	// Flush signals that the surface holds a complete frame.
	Flush(s Handle) error
}

// Errors.
var (
	// ErrUnknownSurface is returned when a provider is asked to draw into a
	// handle it did not create.
	ErrUnknownSurface = errors.New("surface: unknown surface")

	// ErrClosed is returned by providers used after Close.
	ErrClosed = errors.New("surface: provider closed")
)

func unknown(h Handle) error {
	return fmt.Errorf("%w: %v", ErrUnknownSurface, h)
}
