// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster provides the pixel-exact line rasterizer shared by the
// software surface providers.
package raster

import "image"

// Line plots every pixel of the segment (x0, y0)-(x1, y1) that falls inside
// clip, both endpoints included, using Bresenham's algorithm.
//
// Segments are first clipped to clip (Liang-Barsky), so endpoints far
// outside the surface cost no more than the visible part.
func Line(x0, y0, x1, y1 int, clip image.Rectangle, plot func(x, y int)) {
	if clip.Empty() {
		return
	}
	var ok bool
	x0, y0, x1, y1, ok = ClipSegment(x0, y0, x1, y1, clip)
	if !ok {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		if (image.Point{X: x0, Y: y0}).In(clip) {
			plot(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// ClipSegment clips the segment to r grown by one pixel and rounds the
// result back to integers. It reports false if nothing remains.
func ClipSegment(x0, y0, x1, y1 int, r image.Rectangle) (int, int, int, int, bool) {
	if inside(x0, y0, r) && inside(x1, y1, r) {
		return x0, y0, x1, y1, true
	}

	fx0, fy0 := float64(x0), float64(y0)
	ddx, ddy := float64(x1-x0), float64(y1-y0)
	minX, minY := float64(r.Min.X-1), float64(r.Min.Y-1)
	maxX, maxY := float64(r.Max.X), float64(r.Max.Y)

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-ddx, fx0 - minX},
		{ddx, maxX - fx0},
		{-ddy, fy0 - minY},
		{ddy, maxY - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return round(fx0 + t0*ddx), round(fy0 + t0*ddy),
		round(fx0 + t1*ddx), round(fy0 + t1*ddy), true
}

func inside(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X-1 && x <= r.Max.X && y >= r.Min.Y-1 && y <= r.Max.Y
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
