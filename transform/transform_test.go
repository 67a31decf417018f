// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"math"
	"testing"

	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/geom"
)

func near(a, b geom.Vec3) bool {
	const eps = 1e-5
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps
}

func TestNewState(t *testing.T) {
	s := NewState()
	if !s.Modelview.IsIdentity() || !s.Projection.IsIdentity() {
		t.Error("NewState matrices should be identity")
	}
	if s.Mode != command.Modelview {
		t.Errorf("NewState().Mode = %v, want modelview", s.Mode)
	}
	if s.Matrix(command.Target(7)) != nil {
		t.Error("Matrix(unknown) should be nil")
	}
}

func TestApplyVertexIdentity(t *testing.T) {
	s := NewState()
	p, ok := Apply(&s, command.Vertex{X: 0.25, Y: -0.5, Z: 1})
	if !ok {
		t.Fatal("Apply(Vertex) ok = false")
	}
	if p != geom.V3(0.25, -0.5, 1) {
		t.Errorf("Apply(Vertex) = %v, want (0.25, -0.5, 1)", p)
	}
	if s != NewState() {
		t.Error("Apply(Vertex) mutated state")
	}
}

// The emitted point is projection * (modelview * v) for any sequence of
// matrix commands, never the reverse order.
func TestApplyOrderModelviewThenProjection(t *testing.T) {
	mv := geom.Translation(1, 0, 0)
	proj := geom.Scaling(2, 3, 1)

	sequences := []struct {
		name string
		cmds []command.Command
	}{
		{
			name: "SetMatrix",
			cmds: []command.Command{
				command.SetMatrix{Target: command.Projection, M: proj},
				command.SetMatrix{Target: command.Modelview, M: mv},
			},
		},
		{
			name: "MatrixMode and LoadMatrix",
			cmds: []command.Command{
				command.MatrixMode{Mode: command.Projection},
				command.LoadMatrix{M: proj},
				command.MatrixMode{Mode: command.Modelview},
				command.LoadMatrix{M: mv},
			},
		},
		{
			name: "MultMatrix over identity",
			cmds: []command.Command{
				command.MatrixMode{Mode: command.Projection},
				command.LoadIdentity{},
				command.Scale(2, 3, 1),
				command.MatrixMode{Mode: command.Modelview},
				command.LoadIdentity{},
				command.Translate(1, 0, 0),
			},
		},
	}

	v := geom.V3(1, 1, 0)
	want := proj.TransformPoint(mv.TransformPoint(v)) // (4, 3, 0)
	reversed := mv.TransformPoint(proj.TransformPoint(v))

	for _, tt := range sequences {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			for _, cmd := range tt.cmds {
				if _, ok := Apply(&s, cmd); ok {
					t.Fatalf("Apply(%v) emitted a point", cmd.Type())
				}
			}
			got, ok := Apply(&s, command.Vertex{X: v.X, Y: v.Y, Z: v.Z})
			if !ok {
				t.Fatal("Apply(Vertex) ok = false")
			}
			if !near(got, want) {
				t.Errorf("Apply(Vertex) = %v, want %v", got, want)
			}
			if near(got, reversed) {
				t.Errorf("Apply(Vertex) = %v matches reversed order", got)
			}
		})
	}
}

func TestApplyMultMatrixPostMultiplies(t *testing.T) {
	s := NewState()
	Apply(&s, command.Translate(10, 0, 0))
	Apply(&s, command.Scale(2, 2, 2))

	// glTranslate then glScale: the vertex is scaled first.
	got, _ := Apply(&s, command.Vertex{X: 1})
	if !near(got, geom.V3(12, 0, 0)) {
		t.Errorf("Apply(Vertex) = %v, want (12, 0, 0)", got)
	}
}

func TestApplySetMatrixIgnoresMode(t *testing.T) {
	s := NewState()
	Apply(&s, command.MatrixMode{Mode: command.Projection})
	Apply(&s, command.SetMatrix{Target: command.Modelview, M: geom.Scaling(5, 5, 5)})

	if s.Mode != command.Projection {
		t.Errorf("SetMatrix changed Mode to %v", s.Mode)
	}
	if s.Modelview != geom.Scaling(5, 5, 5) {
		t.Error("SetMatrix did not replace modelview")
	}
	if !s.Projection.IsIdentity() {
		t.Error("SetMatrix touched projection")
	}
}

func TestApplyLoadIdentity(t *testing.T) {
	s := NewState()
	s.Projection = geom.Scaling(3, 3, 3)
	Apply(&s, command.MatrixMode{Mode: command.Projection})
	Apply(&s, command.LoadIdentity{})
	if !s.Projection.IsIdentity() {
		t.Error("LoadIdentity did not reset projection")
	}
}

func TestApplyIgnoresUnhandled(t *testing.T) {
	s := NewState()
	s.Modelview = geom.Translation(1, 2, 3)
	before := s

	ignored := []command.Command{
		command.Unsupported{Name: "glColor3f", Args: []float32{1, 0, 0}},
		command.Unsupported{Name: "glBegin"},
		command.MatrixMode{Mode: command.Target(42)},
		command.SetMatrix{Target: command.Target(42), M: geom.Scaling(9, 9, 9)},
	}
	for _, cmd := range ignored {
		if _, ok := Apply(&s, cmd); ok {
			t.Errorf("Apply(%v) emitted a point", cmd.Type())
		}
	}
	if s != before {
		t.Errorf("ignored commands changed state: %+v", s)
	}
}

func TestApplyDeterministic(t *testing.T) {
	cmds := []command.Command{
		command.Rotate(30, 0, 0, 1),
		command.MatrixMode{Mode: command.Projection},
		command.Ortho(-2, 2, -2, 2, -1, 1),
		command.Vertex{X: 1, Y: 1},
	}

	run := func() (State, geom.Vec3) {
		s := NewState()
		var last geom.Vec3
		for _, cmd := range cmds {
			if p, ok := Apply(&s, cmd); ok {
				last = p
			}
		}
		return s, last
	}

	s1, p1 := run()
	s2, p2 := run()
	if s1 != s2 || p1 != p2 {
		t.Errorf("Apply not deterministic: (%v, %v) vs (%v, %v)", s1, p1, s2, p2)
	}
}

func TestHandled(t *testing.T) {
	tests := []struct {
		cmd  command.Command
		want bool
	}{
		{command.Vertex{}, true},
		{command.MatrixMode{}, true},
		{command.LoadIdentity{}, true},
		{command.LoadMatrix{}, true},
		{command.MultMatrix{}, true},
		{command.SetMatrix{}, true},
		{command.Unsupported{Name: "glEnd"}, false},
	}
	for _, tt := range tests {
		if got := Handled(tt.cmd); got != tt.want {
			t.Errorf("Handled(%v) = %v, want %v", tt.cmd.Type(), got, tt.want)
		}
	}
}

func BenchmarkApplyVertex(b *testing.B) {
	s := NewState()
	s.Modelview = geom.Rotation(30, 0, 0, 1)
	s.Projection = geom.Ortho(-2, 2, -2, 2, -1, 1)
	cmd := command.Vertex{X: 1, Y: 2, Z: 3}
	b.ReportAllocs()
	for b.Loop() {
		Apply(&s, cmd)
	}
}
