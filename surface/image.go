// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/vector"

	"github.com/gogpu/glsoft/internal/raster"
)

// ImageProvider is a CPU-based provider that renders into *image.RGBA
// buffers.
//
// Each surface is double-buffered: Clear and DrawLine write the back buffer,
// Flush copies it to the front buffer that Snapshot reads. Lines are
// pixel-exact Bresenham lines by default, or antialiased one-pixel-wide
// lines rasterized with golang.org/x/image/vector when WithAntialias is set.
//
// ImageProvider is safe for concurrent use.
//
// Example:
//
//	p := surface.NewImageProvider(surface.WithColors(color.White, color.Black))
//	h := p.NewSurface(300, 300)
//	_ = p.DrawLine(h, 0, 150, 299, 150)
//	_ = p.Flush(h)
//	img, _ := p.Snapshot(h)
type ImageProvider struct {
	mu       sync.Mutex
	surfaces map[Handle]*imageSurface

	antialias  bool
	foreground *image.Uniform
	background *image.Uniform
}

type imageSurface struct {
	back   *image.RGBA
	front  *image.RGBA
	frames int

	// z is created on first antialiased draw.
	z *vector.Rasterizer
}

// ImageOption configures an ImageProvider.
type ImageOption func(*ImageProvider)

// WithAntialias selects antialiased line rendering.
func WithAntialias(enabled bool) ImageOption {
	return func(p *ImageProvider) {
		p.antialias = enabled
	}
}

// WithColors sets the line color and the color Clear fills with.
// The defaults are opaque white lines on opaque black.
func WithColors(foreground, background color.Color) ImageOption {
	return func(p *ImageProvider) {
		if foreground != nil {
			p.foreground = image.NewUniform(foreground)
		}
		if background != nil {
			p.background = image.NewUniform(background)
		}
	}
}

// NewImageProvider creates a provider with no surfaces.
func NewImageProvider(opts ...ImageOption) *ImageProvider {
	p := &ImageProvider{
		surfaces:   make(map[Handle]*imageSurface),
		foreground: image.NewUniform(color.White),
		background: image.NewUniform(color.Black),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewSurface creates a surface of the given size, filled with the
// background color. Non-positive dimensions are raised to 1.
func (p *ImageProvider) NewSurface(width, height int) Handle {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	s := &imageSurface{
		back:  image.NewRGBA(image.Rect(0, 0, width, height)),
		front: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	draw.Draw(s.back, s.back.Bounds(), p.background, image.Point{}, draw.Src)
	draw.Draw(s.front, s.front.Bounds(), p.background, image.Point{}, draw.Src)

	h := NewHandle()
	p.mu.Lock()
	p.surfaces[h] = s
	p.mu.Unlock()
	return h
}

// Release forgets the surface. Later calls with h fail.
func (p *ImageProvider) Release(h Handle) {
	p.mu.Lock()
	delete(p.surfaces, h)
	p.mu.Unlock()
}

func (p *ImageProvider) lookup(h Handle) (*imageSurface, error) {
	s, ok := p.surfaces[h]
	if !ok {
		return nil, unknown(h)
	}
	return s, nil
}

// Size implements Provider.
func (p *ImageProvider) Size(h Handle) (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.lookup(h)
	if err != nil {
		return 0, 0, err
	}
	b := s.back.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Clear implements Provider.
func (p *ImageProvider) Clear(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.lookup(h)
	if err != nil {
		return err
	}
	draw.Draw(s.back, s.back.Bounds(), p.background, image.Point{}, draw.Src)
	return nil
}

// DrawLine implements Provider.
func (p *ImageProvider) DrawLine(h Handle, x0, y0, x1, y1 int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.lookup(h)
	if err != nil {
		return err
	}
	if p.antialias {
		p.drawLineAA(s, x0, y0, x1, y1)
		return nil
	}

	c := color.RGBAModel.Convert(p.foreground.C).(color.RGBA)
	raster.Line(x0, y0, x1, y1, s.back.Bounds(), func(x, y int) {
		s.back.SetRGBA(x, y, c)
	})
	return nil
}

// drawLineAA fills a one-pixel-wide quad from pixel center to pixel center,
// extended by half a pixel at both ends so the endpoints are covered.
func (p *ImageProvider) drawLineAA(s *imageSurface, x0, y0, x1, y1 int) {
	b := s.back.Bounds()
	var ok bool
	x0, y0, x1, y1, ok = raster.ClipSegment(x0, y0, x1, y1, b)
	if !ok {
		return
	}

	if s.z == nil {
		s.z = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		s.z.Reset(b.Dx(), b.Dy())
	}
	s.z.DrawOp = draw.Over

	ax, ay := float32(x0)+0.5, float32(y0)+0.5
	bx, by := float32(x1)+0.5, float32(y1)+0.5
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	// Half-pixel along and across the segment.
	ux, uy := dx/l*0.5, dy/l*0.5
	nx, ny := -uy, ux

	s.z.MoveTo(ax-ux+nx, ay-uy+ny)
	s.z.LineTo(bx+ux+nx, by+uy+ny)
	s.z.LineTo(bx+ux-nx, by+uy-ny)
	s.z.LineTo(ax-ux-nx, ay-uy-ny)
	s.z.ClosePath()
	s.z.Draw(s.back, b, p.foreground, image.Point{})
}

// Flush implements Provider. It presents the back buffer.
func (p *ImageProvider) Flush(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.lookup(h)
	if err != nil {
		return err
	}
	copy(s.front.Pix, s.back.Pix)
	s.frames++
	return nil
}

// Snapshot returns a copy of the last presented frame.
func (p *ImageProvider) Snapshot(h Handle) (*image.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.lookup(h)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(s.front.Bounds())
	copy(img.Pix, s.front.Pix)
	return img, nil
}

// Frames returns how many times the surface has been flushed.
func (p *ImageProvider) Frames(h Handle) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.lookup(h)
	if err != nil {
		return 0, err
	}
	return s.frames, nil
}

var _ Provider = (*ImageProvider)(nil)
