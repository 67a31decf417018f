// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/glsoft/geom"
	"github.com/gogpu/glsoft/surface"
	"github.com/gogpu/glsoft/transform"
)

// FrameStats summarizes one finalized frame.
type FrameStats struct {
	// Commands is the number of commands drained from the queue.
	Commands int
	// Vertices is the number of points emitted by the interpreter.
	Vertices int
	// Lines is the number of segments sent to the provider.
	Lines int
	// Ignored counts commands the interpreter does not handle.
	Ignored int
}

// Finalize ends the current frame of c on target, a surface of the given
// pixel size owned by p.
//
// The queue is drained and interpreted in order against the transform
// state of c, which persists into the next frame. Consecutive points are
// joined into line segments; a command that emits no point breaks the
// chain. The provider sees Clear, then every DrawLine in order, then
// Flush.
//
// Finalize fails with ErrNotCurrent if c is inactive, and with a
// *SurfaceMismatchError if target is not both the read and the draw
// surface of c; in both cases nothing is drained. Provider errors do not
// abort the frame: the whole queue is still interpreted and the errors
// are returned joined.
//
// Submissions to c wait while a frame is being finalized.
func (c *Context) Finalize(p surface.Provider, target surface.Handle, width, height int) (FrameStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.currentLocked()
	if err != nil {
		return FrameStats{}, err
	}
	if cur.read != target || cur.draw != target {
		return FrameStats{}, &SurfaceMismatchError{Target: target, Read: cur.read, Draw: cur.draw}
	}

	cmds := cur.queue.Drain()
	stats := FrameStats{Commands: len(cmds)}
	var errs []error

	if err := p.Clear(target); err != nil {
		errs = append(errs, fmt.Errorf("clear: %w", err))
	}

	var last geom.Vec3
	chained := false
	for _, cmd := range cmds {
		pt, ok := transform.Apply(&cur.transform, cmd)
		if !ok {
			if !transform.Handled(cmd) {
				stats.Ignored++
			}
			chained = false
			continue
		}
		stats.Vertices++
		if chained {
			x0, y0 := ToPixel(last, width, height)
			x1, y1 := ToPixel(pt, width, height)
			if err := p.DrawLine(target, x0, y0, x1, y1); err != nil {
				errs = append(errs, fmt.Errorf("draw line %d: %w", stats.Lines, err))
			}
			stats.Lines++
		}
		last, chained = pt, true
	}

	if err := p.Flush(target); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}

	log := Logger()
	log.Debug("glsoft: frame finalized",
		"context", c.name(),
		"surface", target.String(),
		"commands", stats.Commands,
		"vertices", stats.Vertices,
		"lines", stats.Lines,
		"ignored", stats.Ignored)
	if len(errs) > 0 {
		log.Warn("glsoft: provider errors during frame", "context", c.name(), "errors", len(errs))
	}
	return stats, errors.Join(errs...)
}

// ToPixel maps a clip-space point to pixel coordinates on a width x height
// surface: x in [-1, 1] spans the columns left to right and y in [-1, 1]
// spans the rows bottom to top. Results are truncated toward zero and
// saturated to the int32 range; NaN maps to 0.
//
// On a 300x300 surface (0, 0) maps to (150, 150), (1, 0) to (300, 150)
// and (0, 1) to (150, 0).
func ToPixel(p geom.Vec3, width, height int) (x, y int) {
	w, h := float32(width), float32(height)
	return toInt(p.X*w/2 + w/2), toInt(-p.Y*h/2 + h/2)
}

func toInt(v float32) int {
	switch {
	case math.IsNaN(float64(v)):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
