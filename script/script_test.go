// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package script

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/geom"
)

const sample = `
width: 200
height: 100
frames:
  - commands:
      - matrix_mode: projection
      - ortho: [-2, 2, -2, 2, -1, 1]
      - matrix_mode: modelview
      - load_identity
      - vertex: [0, 0]
      - vertex: [1, 0, 0.5]
      - translate: [1, 2, 3]
      - color: [1, 0, 0]
      - enable: depth_test
    repeat: 3
  - commands: []
`

func TestDecode(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Width != 200 || s.Height != 100 {
		t.Errorf("size = %dx%d, want 200x100", s.Width, s.Height)
	}
	if len(s.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(s.Frames))
	}

	want := []command.Command{
		command.MatrixMode{Mode: command.Projection},
		command.Ortho(-2, 2, -2, 2, -1, 1),
		command.MatrixMode{Mode: command.Modelview},
		command.LoadIdentity{},
		command.Vertex{X: 0, Y: 0},
		command.Vertex{X: 1, Y: 0, Z: 0.5},
		command.Translate(1, 2, 3),
		command.Unsupported{Name: "color", Args: []float32{1, 0, 0}},
		command.Unsupported{Name: "enable"},
	}
	if got := s.Frames[0].Commands(); !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() =\n%v\nwant\n%v", got, want)
	}
	if got := s.Frames[0].Times(); got != 3 {
		t.Errorf("Times() = %d, want 3", got)
	}
	if got := s.Frames[1].Times(); got != 1 {
		t.Errorf("empty frame Times() = %d, want 1", got)
	}
	if got := len(s.Frames[1].Commands()); got != 0 {
		t.Errorf("empty frame has %d commands", got)
	}
}

func TestDecodeDefaults(t *testing.T) {
	s, err := Parse([]byte("frames: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != DefaultSize || s.Height != DefaultSize {
		t.Errorf("size = %dx%d, want %dx%d", s.Width, s.Height, DefaultSize, DefaultSize)
	}
}

func TestDecodeMatrices(t *testing.T) {
	src := `
frames:
  - commands:
      - load_matrix: [1,0,0,0, 0,1,0,0, 0,0,1,0, 5,6,7,1]
      - mult_matrix: [2,0,0,0, 0,2,0,0, 0,0,2,0, 0,0,0,1]
      - set_matrix:
          target: projection
          m: [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]
      - scale: [2, 3, 4]
      - rotate: [90, 0, 0, 1]
      - frustum: [-1, 1, -1, 1, 1, 10]
`
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	got := s.Frames[0].Commands()
	want := []command.Command{
		command.LoadMatrix{M: geom.Translation(5, 6, 7)},
		command.MultMatrix{M: geom.Scaling(2, 2, 2)},
		command.SetMatrix{Target: command.Projection, M: geom.Identity()},
		command.Scale(2, 3, 4),
		command.Rotate(90, 0, 0, 1),
		command.Frustum(-1, 1, -1, 1, 1, 10),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() =\n%v\nwant\n%v", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "frames: []\ncolour: red\n", "colour"},
		{"negative size", "width: -1\n", "negative size"},
		{"negative repeat", "frames:\n  - commands: []\n    repeat: -2\n", "negative repeat"},
		{"vertex arity", "frames:\n  - commands:\n      - vertex: [1]\n", "got 1 operands"},
		{"vertex type", "frames:\n  - commands:\n      - vertex: [a, b]\n", "must be numbers"},
		{"missing operands", "frames:\n  - commands:\n      - translate\n", "missing operands"},
		{"bad target", "frames:\n  - commands:\n      - matrix_mode: texture\n", "texture"},
		{"two keys", "frames:\n  - commands:\n      - {vertex: [0, 0], ortho: [0,0,0,0,0,0]}\n", "exactly one key"},
		{"sequence step", "frames:\n  - commands:\n      - [1, 2]\n", "name or a mapping"},
		{"short set_matrix", "frames:\n  - commands:\n      - set_matrix: {target: modelview, m: [1]}\n", "16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Parse() error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDecodeReportsLine(t *testing.T) {
	src := "frames:\n  - commands:\n      - vertex: [0, 0]\n      - ortho: [1]\n"
	_, err := Parse([]byte(src))
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("Parse() error = %v, want line 4", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) error = %v\n%s", err, buf.String())
	}
	if back.Width != s.Width || back.Height != s.Height || len(back.Frames) != len(s.Frames) {
		t.Fatalf("round trip = %+v, want %+v", back, s)
	}
	for i := range s.Frames {
		got, want := back.Frames[i].Commands(), s.Frames[i].Commands()
		// Unsupported commands keep only numeric operands.
		if !reflect.DeepEqual(got, want) {
			t.Errorf("frame %d =\n%v\nwant\n%v", i, got, want)
		}
		if back.Frames[i].Times() != s.Frames[i].Times() {
			t.Errorf("frame %d Times() = %d, want %d", i, back.Frames[i].Times(), s.Frames[i].Times())
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Frames) != 2 {
		t.Errorf("len(Frames) = %d, want 2", len(s.Frames))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}
