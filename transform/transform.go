// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package transform interprets recorded commands against the
// fixed-function transform state.
//
// Apply is the single entry point. It is a pure function of the state and
// the command: vertex commands are carried from object space to clip space
// through the modelview and then the projection matrix; matrix commands
// update the state; every other command is ignored.
package transform

import (
	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/geom"
)

// State is the per-context transform state. The zero value is not ready
// for use; call NewState.
type State struct {
	// Modelview transforms object space into eye space.
	Modelview geom.Mat4
	// Projection transforms eye space into clip space.
	Projection geom.Mat4
	// Mode selects the matrix MatrixMode-relative commands act on.
	Mode command.Target
}

// NewState returns the initial state: identity matrices, modelview mode.
func NewState() State {
	return State{
		Modelview:  geom.Identity(),
		Projection: geom.Identity(),
		Mode:       command.Modelview,
	}
}

// Matrix returns a pointer to the named matrix, or nil for an unknown target.
func (s *State) Matrix(t command.Target) *geom.Mat4 {
	switch t {
	case command.Modelview:
		return &s.Modelview
	case command.Projection:
		return &s.Projection
	default:
		return nil
	}
}

// Clip returns p transformed into clip space: modelview first, then
// projection. No perspective divide is performed.
func (s *State) Clip(p geom.Vec3) geom.Vec3 {
	return s.Projection.TransformPoint(s.Modelview.TransformPoint(p))
}

// Apply interprets cmd against s.
//
// A Vertex yields its clip-space position and ok == true; s is unchanged.
// Matrix commands update s and yield nothing. Commands Apply does not
// handle, including command.Unsupported, are no-ops.
//
// A matrix command naming an unknown target is ignored the same way.
func Apply(s *State, cmd command.Command) (p geom.Vec3, ok bool) {
	switch c := cmd.(type) {
	case command.Vertex:
		return s.Clip(c.Point()), true
	case command.MatrixMode:
		if s.Matrix(c.Mode) != nil {
			s.Mode = c.Mode
		}
	case command.LoadIdentity:
		if m := s.Matrix(s.Mode); m != nil {
			*m = geom.Identity()
		}
	case command.LoadMatrix:
		if m := s.Matrix(s.Mode); m != nil {
			*m = c.M
		}
	case command.MultMatrix:
		if m := s.Matrix(s.Mode); m != nil {
			*m = m.Mul(c.M)
		}
	case command.SetMatrix:
		if m := s.Matrix(c.Target); m != nil {
			*m = c.M
		}
	}
	return geom.Vec3{}, false
}

// Handled reports whether Apply interprets cmd rather than ignoring it.
func Handled(cmd command.Command) bool {
	switch cmd.(type) {
	case command.Vertex, command.MatrixMode, command.LoadIdentity,
		command.LoadMatrix, command.MultMatrix, command.SetMatrix:
		return true
	default:
		return false
	}
}
