// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glsoft provides a minimal fixed-function, immediate-mode GL
// emulator that renders wireframe lines through a pluggable surface
// provider.
//
// # Overview
//
// Drawing calls are not executed when made. They are queued on the
// context current on the calling thread and interpreted at the frame
// boundary, when SwapBuffers (or Context.Finalize) drains the queue,
// runs every command against the transform state, joins consecutive
// vertices into line segments, and hands the segments to the provider.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glsoft"
//	    "github.com/gogpu/glsoft/surface"
//	)
//
//	images := surface.NewImageProvider()
//	target := images.NewSurface(300, 300)
//
//	reg := glsoft.NewRegistry()
//	th := reg.NewThread()
//
//	ctx := glsoft.NewContext()
//	defer ctx.Release()
//	if err := th.MakeCurrent(ctx, target, target); err != nil {
//	    log.Fatal(err)
//	}
//
//	th.Vertex2f(-0.5, -0.5)
//	th.Vertex2f(0.5, 0.5)
//	if _, err := th.SwapBuffers(images, target); err != nil {
//	    log.Fatal(err)
//	}
//	frame, _ := images.Snapshot(target)
//	png.Encode(f, frame)
//
// # Threads
//
// Go has no goroutine identity, so the current-context slot is keyed by
// an explicit ThreadID. A Registry holds the slots; Registry.Thread returns
// a per-thread view with the GL-style entry points. A Context is current on
// at most one thread at a time.
//
// # Coordinates
//
// Vertices are transformed by the modelview and then the projection
// matrix, without a perspective divide. Clip-space x and y in [-1, 1] map
// onto the full surface with y pointing up; see ToPixel.
//
// # Logging
//
// glsoft is silent by default. Enable logging with SetLogger.
package glsoft
