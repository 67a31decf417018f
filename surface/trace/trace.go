// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package trace records every provider call of a frame into a SQLite
// database and forwards it to another provider.
//
// A trace answers "which segments did frame N draw on surface S", which
// makes it the provider of choice for regression tests and for inspecting
// a client that is misbehaving on a real display.
//
//	img := surface.NewImageProvider()
//	p, err := trace.Open("frames.db", img)
//	...
//	segs, err := p.Lines(h, 0)
package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/gogpu/glsoft/surface"
)

// Op names a recorded provider call.
type Op string

// Recorded operations.
const (
	OpClear    Op = "clear"
	OpDrawLine Op = "draw_line"
	OpFlush    Op = "flush"
)

// Segment is a recorded DrawLine call.
type Segment struct {
	X0, Y0, X1, Y1 int
}

// Call is one recorded provider call.
type Call struct {
	Seq     int64
	Frame   int
	Op      Op
	Surface surface.Handle
	// Segment is zero unless Op is OpDrawLine.
	Segment Segment
}

const schema = `
CREATE TABLE IF NOT EXISTS calls (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    surface INTEGER NOT NULL,
    frame INTEGER NOT NULL,
    op TEXT NOT NULL,
    x0 INTEGER NOT NULL DEFAULT 0,
    y0 INTEGER NOT NULL DEFAULT 0,
    x1 INTEGER NOT NULL DEFAULT 0,
    y1 INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_calls_frame ON calls(surface, frame);
`

// ErrNoInner is returned by Open when no provider is given to forward to.
var ErrNoInner = errors.New("trace: inner provider is nil")

// Provider is a surface.Provider that records calls before forwarding
// them to an inner provider.
//
// Frames are numbered per surface from 0; the frame number advances after
// each Flush. Provider is safe for concurrent use.
type Provider struct {
	inner surface.Provider
	db    *sql.DB
	log   *slog.Logger

	mu     sync.Mutex
	frames map[surface.Handle]int
	insert *sql.Stmt
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for recording failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// Open opens (or creates) the trace database at path and returns a
// provider forwarding to inner. Use ":memory:" for a transient trace.
func Open(path string, inner surface.Provider, opts ...Option) (*Provider, error) {
	if inner == nil {
		return nil, ErrNoInner
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("trace: open database: %w", err)
	}
	// One connection: ":memory:" databases are per connection, and the
	// recorder writes sequentially anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: create schema: %w", err)
	}
	insert, err := db.Prepare(`INSERT INTO calls (surface, frame, op, x0, y0, x1, y1) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: prepare insert: %w", err)
	}

	p := &Provider{
		inner:  inner,
		db:     db,
		log:    slog.New(slog.DiscardHandler),
		frames: make(map[surface.Handle]int),
		insert: insert,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.resume(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// resume continues frame numbering of surfaces already in the database.
func (p *Provider) resume() error {
	rows, err := p.db.Query(`SELECT surface, COUNT(*) FROM calls WHERE op = ? GROUP BY surface`, string(OpFlush))
	if err != nil {
		return fmt.Errorf("trace: read frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h int64
		var n int
		if err := rows.Scan(&h, &n); err != nil {
			return fmt.Errorf("trace: read frames: %w", err)
		}
		p.frames[surface.Handle(h)] = n
	}
	return rows.Err()
}

// record stores one call. Must be called with p.mu held.
func (p *Provider) record(h surface.Handle, op Op, seg Segment) error {
	//nolint:gosec // G115: handles are allocated sequentially from 1
	_, err := p.insert.Exec(int64(h), p.frames[h], string(op), seg.X0, seg.Y0, seg.X1, seg.Y1)
	if err != nil {
		p.log.Warn("trace: record failed", "op", op, "surface", h, "err", err)
		return fmt.Errorf("trace: record %s: %w", op, err)
	}
	return nil
}

// Size implements surface.Provider. Size queries are not recorded.
func (p *Provider) Size(h surface.Handle) (int, int, error) {
	return p.inner.Size(h)
}

// Clear implements surface.Provider.
func (p *Provider) Clear(h surface.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.insert == nil {
		return surface.ErrClosed
	}
	if err := p.inner.Clear(h); err != nil {
		return err
	}
	return p.record(h, OpClear, Segment{})
}

// DrawLine implements surface.Provider.
func (p *Provider) DrawLine(h surface.Handle, x0, y0, x1, y1 int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.insert == nil {
		return surface.ErrClosed
	}
	if err := p.inner.DrawLine(h, x0, y0, x1, y1); err != nil {
		return err
	}
	return p.record(h, OpDrawLine, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

// Flush implements surface.Provider.
func (p *Provider) Flush(h surface.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.insert == nil {
		return surface.ErrClosed
	}
	if err := p.inner.Flush(h); err != nil {
		return err
	}
	err := p.record(h, OpFlush, Segment{})
	p.frames[h]++
	return err
}

// Frames returns the number of completed (flushed) frames of h.
func (p *Provider) Frames(h surface.Handle) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames[h]
}

// Lines returns the segments drawn on h during the given frame, in call order.
func (p *Provider) Lines(h surface.Handle, frame int) ([]Segment, error) {
	rows, err := p.db.Query(
		`SELECT x0, y0, x1, y1 FROM calls WHERE surface = ? AND frame = ? AND op = ? ORDER BY seq`,
		int64(h), frame, string(OpDrawLine)) //nolint:gosec // G115: see record
	if err != nil {
		return nil, fmt.Errorf("trace: query lines: %w", err)
	}
	defer rows.Close()

	var segs []Segment
	for rows.Next() {
		var s Segment
		if err := rows.Scan(&s.X0, &s.Y0, &s.X1, &s.Y1); err != nil {
			return nil, fmt.Errorf("trace: scan line: %w", err)
		}
		segs = append(segs, s)
	}
	return segs, rows.Err()
}

// Calls returns every recorded call on h, in call order.
func (p *Provider) Calls(h surface.Handle) ([]Call, error) {
	rows, err := p.db.Query(
		`SELECT seq, frame, op, x0, y0, x1, y1 FROM calls WHERE surface = ? ORDER BY seq`,
		int64(h)) //nolint:gosec // G115: see record
	if err != nil {
		return nil, fmt.Errorf("trace: query calls: %w", err)
	}
	defer rows.Close()

	var calls []Call
	for rows.Next() {
		c := Call{Surface: h}
		var op string
		if err := rows.Scan(&c.Seq, &c.Frame, &op, &c.Segment.X0, &c.Segment.Y0, &c.Segment.X1, &c.Segment.Y1); err != nil {
			return nil, fmt.Errorf("trace: scan call: %w", err)
		}
		c.Op = Op(op)
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// Surfaces returns the handles that appear in the trace, in order of
// first use.
func (p *Provider) Surfaces() ([]surface.Handle, error) {
	rows, err := p.db.Query(`SELECT surface FROM calls GROUP BY surface ORDER BY MIN(seq)`)
	if err != nil {
		return nil, fmt.Errorf("trace: query surfaces: %w", err)
	}
	defer rows.Close()

	var hs []surface.Handle
	for rows.Next() {
		var h int64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("trace: scan surface: %w", err)
		}
		hs = append(hs, surface.Handle(h)) //nolint:gosec // G115: see record
	}
	return hs, rows.Err()
}

// Close closes the database. The inner provider is not closed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.insert != nil {
		p.insert.Close()
		p.insert = nil
	}
	return p.db.Close()
}

var _ surface.Provider = (*Provider)(nil)
