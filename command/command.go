// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package command defines the drawing commands a context records between
// frame boundaries, and the queue that holds them.
//
// Commands are plain value types. The set is closed: every variant is
// declared in this package, and code that interprets commands switches on
// the concrete type and ignores anything it does not handle. Entry points
// the pipeline does not implement are recorded as [Unsupported] so they
// keep their place in the stream without affecting it.
//
// # Example
//
//	var q command.Queue
//	q.Push(command.MatrixMode{Mode: command.Projection})
//	q.Push(command.Ortho(-1, 1, -1, 1, -1, 1))
//	q.Push(command.Vertex{X: 0, Y: 0, Z: 0})
//	for _, cmd := range q.Drain() {
//	    // interpret cmd
//	}
package command

import (
	"fmt"

	"github.com/gogpu/glsoft/geom"
)

// Type identifies the kind of a command.
type Type uint8

const (
	// Geometry commands
	TypeVertex Type = iota // Submit a vertex

	// Matrix commands
	TypeMatrixMode   // Select the matrix later matrix commands act on
	TypeLoadIdentity // Replace the selected matrix with identity
	TypeLoadMatrix   // Replace the selected matrix
	TypeMultMatrix   // Post-multiply the selected matrix
	TypeSetMatrix    // Replace a named matrix regardless of mode

	// Recorded but not interpreted
	TypeUnsupported
)

var typeNames = [...]string{
	TypeVertex:       "Vertex",
	TypeMatrixMode:   "MatrixMode",
	TypeLoadIdentity: "LoadIdentity",
	TypeLoadMatrix:   "LoadMatrix",
	TypeMultMatrix:   "MultMatrix",
	TypeSetMatrix:    "SetMatrix",
	TypeUnsupported:  "Unsupported",
}

// String returns the string representation of a Type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Command is implemented by every command variant in this package.
// The unexported marker method keeps the set closed.
type Command interface {
	// Type returns the Type for this command.
	Type() Type

	command()
}

// Target names one of the matrices a context keeps.
type Target uint8

const (
	// Modelview transforms object space into eye space.
	Modelview Target = iota
	// Projection transforms eye space into clip space.
	Projection
)

// String returns the GL-style name of the target.
func (t Target) String() string {
	switch t {
	case Modelview:
		return "modelview"
	case Projection:
		return "projection"
	default:
		return fmt.Sprintf("Target(%d)", t)
	}
}

// ParseTarget converts "modelview" or "projection" into a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "modelview":
		return Modelview, nil
	case "projection":
		return Projection, nil
	default:
		return 0, fmt.Errorf("command: unknown matrix target %q", s)
	}
}

// --------------------------------------------------------------------------
// Geometry Commands
// --------------------------------------------------------------------------

// Vertex submits an object-space vertex, as glVertex3f.
type Vertex struct {
	X, Y, Z float32
}

// Type implements Command.
func (Vertex) Type() Type { return TypeVertex }
func (Vertex) command()   {}

// Point returns the vertex position.
func (v Vertex) Point() geom.Vec3 {
	return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// --------------------------------------------------------------------------
// Matrix Commands
// --------------------------------------------------------------------------

// MatrixMode selects the matrix that LoadIdentity, LoadMatrix and
// MultMatrix act on, as glMatrixMode.
type MatrixMode struct {
	Mode Target
}

// Type implements Command.
func (MatrixMode) Type() Type { return TypeMatrixMode }
func (MatrixMode) command()   {}

// LoadIdentity replaces the selected matrix with identity.
type LoadIdentity struct{}

// Type implements Command.
func (LoadIdentity) Type() Type { return TypeLoadIdentity }
func (LoadIdentity) command()   {}

// LoadMatrix replaces the selected matrix with M.
type LoadMatrix struct {
	M geom.Mat4
}

// Type implements Command.
func (LoadMatrix) Type() Type { return TypeLoadMatrix }
func (LoadMatrix) command()   {}

// MultMatrix replaces the selected matrix C with C * M.
type MultMatrix struct {
	M geom.Mat4
}

// Type implements Command.
func (MultMatrix) Type() Type { return TypeMultMatrix }
func (MultMatrix) command()   {}

// SetMatrix replaces the named matrix with M. The matrix mode is not
// consulted or changed.
type SetMatrix struct {
	Target Target
	M      geom.Mat4
}

// Type implements Command.
func (SetMatrix) Type() Type { return TypeSetMatrix }
func (SetMatrix) command()   {}

// Translate returns the MultMatrix command glTranslatef records.
func Translate(x, y, z float32) MultMatrix {
	return MultMatrix{M: geom.Translation(x, y, z)}
}

// Scale returns the MultMatrix command glScalef records.
func Scale(x, y, z float32) MultMatrix {
	return MultMatrix{M: geom.Scaling(x, y, z)}
}

// Rotate returns the MultMatrix command glRotatef records.
// The angle is in degrees.
func Rotate(angle, x, y, z float32) MultMatrix {
	return MultMatrix{M: geom.Rotation(angle, x, y, z)}
}

// Ortho returns the MultMatrix command glOrtho records.
func Ortho(left, right, bottom, top, near, far float32) MultMatrix {
	return MultMatrix{M: geom.Ortho(left, right, bottom, top, near, far)}
}

// Frustum returns the MultMatrix command glFrustum records.
func Frustum(left, right, bottom, top, near, far float32) MultMatrix {
	return MultMatrix{M: geom.Frustum(left, right, bottom, top, near, far)}
}

// --------------------------------------------------------------------------
// Unsupported Commands
// --------------------------------------------------------------------------

// Unsupported records a call to an entry point the pipeline does not
// implement, such as glColor3f or glBegin. Interpreters ignore it.
type Unsupported struct {
	// Name is the entry point, e.g. "glColor3f".
	Name string
	// Args holds the scalar operands, if any.
	Args []float32
}

// Type implements Command.
func (Unsupported) Type() Type { return TypeUnsupported }
func (Unsupported) command()   {}
