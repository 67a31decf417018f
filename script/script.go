// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package script decodes frame scripts: YAML documents listing, frame by
// frame, the commands to submit to a context.
//
// A script looks like this:
//
//	width: 300
//	height: 300
//	frames:
//	  - commands:
//	      - matrix_mode: projection
//	      - ortho: [-2, 2, -2, 2, -1, 1]
//	      - matrix_mode: modelview
//	      - vertex: [0, 0]
//	      - vertex: [1, 0, 0]
//	      - load_identity
//	    repeat: 2
//
// Each command is a single-key mapping or, for commands without operands,
// a bare name. Names the interpreter does not know decode to
// command.Unsupported with any numeric operands kept as arguments.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/glsoft/command"
)

// DefaultSize is the surface width and height used when a script omits them.
const DefaultSize = 300

// ErrInvalid is wrapped by every decoding error caused by script content.
var ErrInvalid = errors.New("script: invalid script")

// Script is a decoded frame script.
type Script struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Frames []Frame `yaml:"frames"`
}

// Frame is the command list of one frame.
type Frame struct {
	Steps []Step `yaml:"commands"`
	// Repeat submits the frame this many times; zero means once.
	Repeat int `yaml:"repeat,omitempty"`
}

// Commands returns the commands of f in order.
func (f Frame) Commands() []command.Command {
	out := make([]command.Command, len(f.Steps))
	for i, s := range f.Steps {
		out[i] = s.Command
	}
	return out
}

// Times returns how many times f is submitted.
func (f Frame) Times() int {
	return max(f.Repeat, 1)
}

// Decode reads one script from r.
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		if errors.Is(err, ErrInvalid) {
			return nil, err
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Parse decodes a script held in memory.
func Parse(data []byte) (*Script, error) {
	return Decode(bytes.NewReader(data))
}

// Load decodes the script file at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes s to w as YAML that Decode reads back.
func Encode(w io.Writer, s *Script) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("script: encode: %w", err)
	}
	return enc.Close()
}

func (s *Script) normalize() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if s.Width == 0 {
		s.Width = DefaultSize
	}
	if s.Height == 0 {
		s.Height = DefaultSize
	}
	for i, f := range s.Frames {
		if f.Repeat < 0 {
			return fmt.Errorf("%w: frame %d: negative repeat %d", ErrInvalid, i, f.Repeat)
		}
	}
	return nil
}
