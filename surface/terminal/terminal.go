// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package terminal implements a surface provider that draws into a terminal
// through tcell. Each character cell is one pixel, so a frame is as large as
// the terminal window.
//
// Importing the package registers the "terminal" backend with the surface
// registry:
//
//	import _ "github.com/gogpu/glsoft/surface/terminal"
//
//	p, h, err := surface.NewSurfaceByName("terminal", surface.Options{})
package terminal

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/glsoft/internal/raster"
	"github.com/gogpu/glsoft/surface"
)

// DefaultRune is the rune plotted for a lit cell.
const DefaultRune = '█'

// Provider adapts a tcell.Screen to surface.Provider.
//
// The provider owns exactly one surface, the whole screen. Drawing writes
// tcell's back buffer; Flush calls Screen.Show.
type Provider struct {
	mu     sync.Mutex
	screen tcell.Screen
	handle surface.Handle
	closed bool

	r     rune
	style tcell.Style
	log   *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithRune sets the rune plotted for each pixel of a line.
func WithRune(r rune) Option {
	return func(p *Provider) {
		p.r = r
	}
}

// WithStyle sets the style of plotted cells.
func WithStyle(style tcell.Style) Option {
	return func(p *Provider) {
		p.style = style
	}
}

// WithLogger sets the logger for screen lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// New wraps an initialized screen. The caller keeps ownership of screen
// until Close.
func New(screen tcell.Screen, opts ...Option) *Provider {
	p := &Provider{
		screen: screen,
		handle: surface.NewHandle(),
		r:      DefaultRune,
		style:  tcell.StyleDefault,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open creates and initializes a screen on the controlling terminal.
func Open(opts ...Option) (*Provider, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	screen.HideCursor()

	p := New(screen, opts...)
	w, h := screen.Size()
	p.log.Debug("terminal: screen opened", "width", w, "height", h)
	return p, nil
}

// Handle returns the surface handle for the screen.
func (p *Provider) Handle() surface.Handle {
	return p.handle
}

// Screen exposes the wrapped tcell.Screen, e.g. to poll for events.
func (p *Provider) Screen() tcell.Screen {
	return p.screen
}

func (p *Provider) check(h surface.Handle) error {
	if p.closed {
		return surface.ErrClosed
	}
	if h != p.handle {
		return fmt.Errorf("%w: %v", surface.ErrUnknownSurface, h)
	}
	return nil
}

// Size implements surface.Provider.
func (p *Provider) Size(h surface.Handle) (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.check(h); err != nil {
		return 0, 0, err
	}
	w, ht := p.screen.Size()
	return w, ht, nil
}

// Clear implements surface.Provider.
func (p *Provider) Clear(h surface.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.check(h); err != nil {
		return err
	}
	p.screen.Clear()
	return nil
}

// DrawLine implements surface.Provider.
func (p *Provider) DrawLine(h surface.Handle, x0, y0, x1, y1 int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.check(h); err != nil {
		return err
	}
	w, ht := p.screen.Size()
	raster.Line(x0, y0, x1, y1, image.Rect(0, 0, w, ht), func(x, y int) {
		p.screen.SetContent(x, y, p.r, nil, p.style)
	})
	return nil
}

// Flush implements surface.Provider.
func (p *Provider) Flush(h surface.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.check(h); err != nil {
		return err
	}
	p.screen.Show()
	return nil
}

// Close restores the terminal. Close is idempotent.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.screen.Fini()
	p.log.Debug("terminal: screen closed")
	return nil
}

var _ surface.Provider = (*Provider)(nil)

func init() {
	surface.Register("terminal", 5, func(surface.Options) (surface.Provider, surface.Handle, error) {
		p, err := Open()
		if err != nil {
			return nil, surface.Nil, err
		}
		return p, p.Handle(), nil
	}, nil)
}
