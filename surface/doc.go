// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface defines the output side of the pipeline: opaque surface
// handles and the providers that draw into them.
//
// A [Handle] identifies a drawable region owned by some [Provider]. Handles
// carry no behavior; two handles are the same surface exactly when they
// compare equal. The context binds a (read, draw) pair of handles and, at
// frame boundaries, asks the provider to clear, draw line segments in
// pixel coordinates, and flush.
//
// # Providers
//
//   - ImageProvider: in-memory *image.RGBA back and front buffers
//   - terminal.Provider: tcell screen cells as pixels (package surface/terminal)
//   - trace.Provider: SQLite draw-call recorder wrapping another provider
//     (package surface/trace)
//
// # Registry
//
// Providers register factories by name, following the database/sql driver
// pattern:
//
//	func init() {
//	    surface.Register("terminal", 5, terminalFactory, nil)
//	}
//
//	// Later:
//	p, h, err := surface.NewSurfaceByName("terminal", surface.Options{})
//
// # Usage
//
//	p := surface.NewImageProvider()
//	h := p.NewSurface(300, 300)
//
//	_ = p.Clear(h)
//	_ = p.DrawLine(h, 0, 0, 299, 299)
//	_ = p.Flush(h)
//
//	img, _ := p.Snapshot(h)
package surface
