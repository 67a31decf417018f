// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

import (
	"fmt"

	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/geom"
	"github.com/gogpu/glsoft/surface"
)

// Thread is the view of a Registry from one caller thread. Its methods
// act on the context current on that thread, mirroring the implicit
// current context of a GL API without global state.
//
// A Thread is a small value handle; copies refer to the same slot.
type Thread struct {
	registry *Registry
	id       ThreadID
}

// ID returns the thread identifier.
func (t *Thread) ID() ThreadID {
	return t.id
}

// MakeCurrent binds ctx to this thread with the given surfaces, or
// detaches the current context when ctx is nil. See Registry.MakeCurrent.
func (t *Thread) MakeCurrent(ctx *Context, read, draw surface.Handle) error {
	return t.registry.MakeCurrent(t.id, ctx, read, draw)
}

// Current returns the context current on this thread, or nil.
func (t *Thread) Current() *Context {
	return t.registry.Current(t.id)
}

// Submit queues cmd on the current context.
// It fails with ErrNotCurrent if no context is current on this thread.
func (t *Thread) Submit(cmd command.Command) error {
	ctx := t.Current()
	if ctx == nil {
		return ErrNotCurrent
	}
	return ctx.Submit(cmd)
}

// SwapBuffers finalizes the frame of the current context on target,
// using the size p reports for it.
func (t *Thread) SwapBuffers(p surface.Provider, target surface.Handle) (FrameStats, error) {
	ctx := t.Current()
	if ctx == nil {
		return FrameStats{}, ErrNotCurrent
	}
	w, h, err := p.Size(target)
	if err != nil {
		return FrameStats{}, fmt.Errorf("glsoft: surface size: %w", err)
	}
	return ctx.Finalize(p, target, w, h)
}

// Vertex3f queues a vertex.
func (t *Thread) Vertex3f(x, y, z float32) error {
	return t.Submit(command.Vertex{X: x, Y: y, Z: z})
}

// Vertex2f queues a vertex with z = 0.
func (t *Thread) Vertex2f(x, y float32) error {
	return t.Submit(command.Vertex{X: x, Y: y})
}

// MatrixMode selects the matrix later matrix commands act on.
func (t *Thread) MatrixMode(mode command.Target) error {
	return t.Submit(command.MatrixMode{Mode: mode})
}

// LoadIdentity replaces the selected matrix with the identity.
func (t *Thread) LoadIdentity() error {
	return t.Submit(command.LoadIdentity{})
}

// LoadMatrixf replaces the selected matrix with m, given column-major.
func (t *Thread) LoadMatrixf(m [16]float32) error {
	return t.Submit(command.LoadMatrix{M: geom.Mat4(m)})
}

// MultMatrixf post-multiplies the selected matrix by m, given column-major.
func (t *Thread) MultMatrixf(m [16]float32) error {
	return t.Submit(command.MultMatrix{M: geom.Mat4(m)})
}

// Translatef post-multiplies the selected matrix by a translation.
func (t *Thread) Translatef(x, y, z float32) error {
	return t.Submit(command.Translate(x, y, z))
}

// Scalef post-multiplies the selected matrix by a scale.
func (t *Thread) Scalef(x, y, z float32) error {
	return t.Submit(command.Scale(x, y, z))
}

// Rotatef post-multiplies the selected matrix by a rotation of angle
// degrees about the axis (x, y, z).
func (t *Thread) Rotatef(angle, x, y, z float32) error {
	return t.Submit(command.Rotate(angle, x, y, z))
}

// Ortho post-multiplies the selected matrix by a parallel projection.
func (t *Thread) Ortho(left, right, bottom, top, near, far float32) error {
	return t.Submit(command.Ortho(left, right, bottom, top, near, far))
}

// Frustum post-multiplies the selected matrix by a perspective projection.
func (t *Thread) Frustum(left, right, bottom, top, near, far float32) error {
	return t.Submit(command.Frustum(left, right, bottom, top, near, far))
}
