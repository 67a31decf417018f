// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

import (
	"errors"
	"fmt"

	"github.com/gogpu/glsoft/surface"
	"github.com/gogpu/glsoft/visual"
)

// Errors returned by context and registry operations.
// A call that fails with one of these leaves every context and thread
// slot exactly as it was before the call.
var (
	// ErrAlreadyBound is returned when making a context current on a thread
	// while it is current on another thread.
	ErrAlreadyBound = errors.New("glsoft: context is current on another thread")

	// ErrNotCurrent is returned when submitting to, or finalizing, a context
	// that is not current.
	ErrNotCurrent = errors.New("glsoft: context is not current")

	// ErrDirtyQueue is returned when detaching or rebinding a context that
	// still holds queued commands.
	ErrDirtyQueue = errors.New("glsoft: context has queued commands")

	// ErrSurfaceMismatch is returned by Finalize when the target surface is
	// not both the read and the draw surface of the context.
	ErrSurfaceMismatch = errors.New("glsoft: surface mismatch")

	// ErrUnsupportedCapability is returned for requests outside the
	// supported feature set, such as context sharing.
	ErrUnsupportedCapability = visual.ErrUnsupportedCapability

	// ErrContextDestroyed is returned when using a context after its last
	// reference was released.
	ErrContextDestroyed = errors.New("glsoft: context destroyed")

	// ErrNilCommand is returned when submitting a nil command.
	ErrNilCommand = errors.New("glsoft: nil command")
)

// SurfaceMismatchError describes a finalize target that differs from the
// surfaces the context is bound to.
type SurfaceMismatchError struct {
	Target surface.Handle
	Read   surface.Handle
	Draw   surface.Handle
}

func (e *SurfaceMismatchError) Error() string {
	return fmt.Sprintf("glsoft: surface mismatch: target %v, bound read %v draw %v",
		e.Target, e.Read, e.Draw)
}

func (e *SurfaceMismatchError) Unwrap() error {
	return ErrSurfaceMismatch
}

// DirtyQueueError reports how many commands blocked a detach.
type DirtyQueueError struct {
	Pending int
}

func (e *DirtyQueueError) Error() string {
	return fmt.Sprintf("glsoft: context has %d queued commands", e.Pending)
}

func (e *DirtyQueueError) Unwrap() error {
	return ErrDirtyQueue
}
