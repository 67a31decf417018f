// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package script

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/geom"
)

// Step is one command of a frame.
type Step struct {
	command.Command
}

// Command names used in scripts.
const (
	nameVertex       = "vertex"
	nameMatrixMode   = "matrix_mode"
	nameLoadIdentity = "load_identity"
	nameLoadMatrix   = "load_matrix"
	nameMultMatrix   = "mult_matrix"
	nameSetMatrix    = "set_matrix"
	nameTranslate    = "translate"
	nameScale        = "scale"
	nameRotate       = "rotate"
	nameOrtho        = "ortho"
	nameFrustum      = "frustum"
)

// setMatrix is the operand of set_matrix.
type setMatrix struct {
	Target string    `yaml:"target"`
	M      []float32 `yaml:"m,flow"`
}

// UnmarshalYAML decodes a bare command name or a single-key mapping.
func (s *Step) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		cmd, err := decodeCommand(n.Value, nil, n.Line)
		if err != nil {
			return err
		}
		s.Command = cmd
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("%w: line %d: command must have exactly one key", ErrInvalid, n.Line)
		}
		cmd, err := decodeCommand(n.Content[0].Value, n.Content[1], n.Line)
		if err != nil {
			return err
		}
		s.Command = cmd
		return nil
	default:
		return fmt.Errorf("%w: line %d: command must be a name or a mapping", ErrInvalid, n.Line)
	}
}

func decodeCommand(name string, arg *yaml.Node, line int) (command.Command, error) {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s: %s", ErrInvalid, line, name, fmt.Sprintf(format, args...))
	}
	floats := func(counts ...int) ([]float32, error) {
		if arg == nil {
			return nil, bad("missing operands")
		}
		var v []float32
		if err := arg.Decode(&v); err != nil {
			return nil, bad("operands must be numbers")
		}
		for _, c := range counts {
			if len(v) == c {
				return v, nil
			}
		}
		return nil, bad("got %d operands, want %v", len(v), counts)
	}
	matrix := func(v []float32) geom.Mat4 {
		var m geom.Mat4
		copy(m[:], v)
		return m
	}

	switch name {
	case nameVertex:
		v, err := floats(2, 3)
		if err != nil {
			return nil, err
		}
		c := command.Vertex{X: v[0], Y: v[1]}
		if len(v) == 3 {
			c.Z = v[2]
		}
		return c, nil
	case nameMatrixMode:
		if arg == nil || arg.Kind != yaml.ScalarNode {
			return nil, bad("want modelview or projection")
		}
		t, err := command.ParseTarget(arg.Value)
		if err != nil {
			return nil, bad("%v", err)
		}
		return command.MatrixMode{Mode: t}, nil
	case nameLoadIdentity:
		return command.LoadIdentity{}, nil
	case nameLoadMatrix:
		v, err := floats(16)
		if err != nil {
			return nil, err
		}
		return command.LoadMatrix{M: matrix(v)}, nil
	case nameMultMatrix:
		v, err := floats(16)
		if err != nil {
			return nil, err
		}
		return command.MultMatrix{M: matrix(v)}, nil
	case nameSetMatrix:
		if arg == nil {
			return nil, bad("missing operands")
		}
		var sm setMatrix
		if err := arg.Decode(&sm); err != nil {
			return nil, bad("%v", err)
		}
		t, err := command.ParseTarget(sm.Target)
		if err != nil {
			return nil, bad("%v", err)
		}
		if len(sm.M) != 16 {
			return nil, bad("got %d matrix elements, want 16", len(sm.M))
		}
		return command.SetMatrix{Target: t, M: matrix(sm.M)}, nil
	case nameTranslate:
		v, err := floats(3)
		if err != nil {
			return nil, err
		}
		return command.Translate(v[0], v[1], v[2]), nil
	case nameScale:
		v, err := floats(3)
		if err != nil {
			return nil, err
		}
		return command.Scale(v[0], v[1], v[2]), nil
	case nameRotate:
		v, err := floats(4)
		if err != nil {
			return nil, err
		}
		return command.Rotate(v[0], v[1], v[2], v[3]), nil
	case nameOrtho:
		v, err := floats(6)
		if err != nil {
			return nil, err
		}
		return command.Ortho(v[0], v[1], v[2], v[3], v[4], v[5]), nil
	case nameFrustum:
		v, err := floats(6)
		if err != nil {
			return nil, err
		}
		return command.Frustum(v[0], v[1], v[2], v[3], v[4], v[5]), nil
	}

	u := command.Unsupported{Name: name}
	if arg != nil {
		// Non-numeric operands are dropped along with the command itself.
		var v []float32
		if arg.Decode(&v) == nil {
			u.Args = v
		}
	}
	return u, nil
}

// MarshalYAML encodes s in the form UnmarshalYAML reads. Translate, Scale
// and the other matrix constructors encode as mult_matrix.
func (s Step) MarshalYAML() (any, error) {
	flow := func(v []float32) *yaml.Node {
		n := &yaml.Node{}
		_ = n.Encode(v)
		n.Style = yaml.FlowStyle
		return n
	}
	one := func(name string, v any) map[string]any {
		return map[string]any{name: v}
	}

	switch c := s.Command.(type) {
	case command.Vertex:
		return one(nameVertex, flow([]float32{c.X, c.Y, c.Z})), nil
	case command.MatrixMode:
		return one(nameMatrixMode, c.Mode.String()), nil
	case command.LoadIdentity:
		return nameLoadIdentity, nil
	case command.LoadMatrix:
		return one(nameLoadMatrix, flow(c.M[:])), nil
	case command.MultMatrix:
		return one(nameMultMatrix, flow(c.M[:])), nil
	case command.SetMatrix:
		return one(nameSetMatrix, setMatrix{Target: c.Target.String(), M: c.M[:]}), nil
	case command.Unsupported:
		if len(c.Args) == 0 {
			return c.Name, nil
		}
		return one(c.Name, flow(c.Args)), nil
	case nil:
		return nil, fmt.Errorf("script: nil command")
	default:
		return nil, fmt.Errorf("script: cannot encode %v", c.Type())
	}
}
