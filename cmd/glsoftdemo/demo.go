// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/script"
)

// demoScript returns frames of a square turning around the view axis.
// The projection is set once in the first frame; it persists after that.
func demoScript(frames, width, height int) *script.Script {
	frames = max(frames, 1)
	aspect := float32(width) / float32(max(height, 1))
	step := 90 / float32(frames)

	sc := &script.Script{Width: width, Height: height}
	for i := range frames {
		var cmds []command.Command
		if i == 0 {
			cmds = append(cmds,
				command.MatrixMode{Mode: command.Projection},
				command.LoadIdentity{},
				command.Ortho(-1.5*aspect, 1.5*aspect, -1.5, 1.5, -1, 1),
				command.MatrixMode{Mode: command.Modelview},
			)
		}
		cmds = append(cmds,
			command.LoadIdentity{},
			command.Rotate(step*float32(i), 0, 0, 1),
		)
		cmds = append(cmds, square(1)...)
		// Inner square, scaled and counter-rotated.
		cmds = append(cmds,
			command.LoadIdentity{},
			command.Rotate(-2*step*float32(i), 0, 0, 1),
			command.Scale(0.5, 0.5, 1),
		)
		cmds = append(cmds, square(1)...)

		f := script.Frame{Steps: make([]script.Step, len(cmds))}
		for j, c := range cmds {
			f.Steps[j] = script.Step{Command: c}
		}
		sc.Frames = append(sc.Frames, f)
	}
	return sc
}

// square returns the closed outline of a square of half-size s.
func square(s float32) []command.Command {
	return []command.Command{
		command.Vertex{X: -s, Y: -s},
		command.Vertex{X: s, Y: -s},
		command.Vertex{X: s, Y: s},
		command.Vertex{X: -s, Y: s},
		command.Vertex{X: -s, Y: -s},
	}
}
