// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glsoft/command"
	"github.com/gogpu/glsoft/surface"
	"github.com/gogpu/glsoft/transform"
	"github.com/gogpu/glsoft/visual"
)

var lastContextID atomic.Uint64

// Context is a rendering context: transform state plus, while current,
// the surfaces it is bound to and the commands queued since the last frame.
//
// A Context is either inactive or current on exactly one thread of one
// Registry. Its methods are safe for concurrent use. The creator holds one
// reference; call Release when done.
type Context struct {
	id     uint64
	label  string
	format visual.Format
	hint   int
	refs   atomic.Int32

	mu        sync.Mutex
	state     contextState
	destroyed bool
}

// contextState is either *inactive or *current.
type contextState interface {
	transformState() *transform.State
}

type inactive struct {
	transform transform.State
}

func (s *inactive) transformState() *transform.State { return &s.transform }

type current struct {
	read, draw surface.Handle
	thread     ThreadID
	transform  transform.State
	queue      command.Queue
}

func (s *current) transformState() *transform.State { return &s.transform }

// NewContext creates an inactive context with the default pixel format and
// identity matrices.
func NewContext(opts ...ContextOption) *Context {
	return newContext(visual.DefaultFormat(), opts)
}

// CreateContext creates an inactive context for format.
//
// Sharing state with another context is not supported: a non-nil
// shareWith fails with ErrUnsupportedCapability.
func CreateContext(format visual.Format, shareWith *Context, opts ...ContextOption) (*Context, error) {
	if shareWith != nil {
		return nil, fmt.Errorf("%w: context sharing", ErrUnsupportedCapability)
	}
	return newContext(format, opts), nil
}

func newContext(format visual.Format, opts []ContextOption) *Context {
	o := defaultContextOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		id:     lastContextID.Add(1),
		label:  o.label,
		format: format,
		hint:   o.queueHint,
		state:  &inactive{transform: transform.NewState()},
	}
	c.refs.Store(1)

	Logger().Info("glsoft: context created", "context", c.name(), "format", format.String())
	return c
}

// ID returns a process-unique identifier for c.
func (c *Context) ID() uint64 {
	return c.id
}

// Format returns the pixel format c was created with.
func (c *Context) Format() visual.Format {
	return c.format
}

// String returns the label given with WithLabel, or "context#N".
func (c *Context) String() string {
	return c.name()
}

func (c *Context) name() string {
	if c.label != "" {
		return c.label
	}
	return fmt.Sprintf("context#%d", c.id)
}

// Retain adds a reference to c.
func (c *Context) Retain() {
	if c.refs.Add(1) <= 1 {
		panic("glsoft: Retain of destroyed context")
	}
}

// Release drops a reference to c. When the last reference is dropped the
// context is destroyed and further use fails with ErrContextDestroyed.
// A context that is current holds a reference for its thread slot, so it
// is never destroyed while current.
func (c *Context) Release() {
	n := c.refs.Add(-1)
	switch {
	case n > 0:
		return
	case n < 0:
		panic("glsoft: Release of destroyed context")
	}

	c.mu.Lock()
	c.destroyed = true
	c.state = nil
	c.mu.Unlock()

	Logger().Info("glsoft: context destroyed", "context", c.name())
}

// Submit appends cmd to the queue of c. The command is interpreted when
// the frame is finalized, not now.
//
// Submit fails with ErrNotCurrent if c is inactive.
func (c *Context) Submit(cmd command.Command) error {
	if cmd == nil {
		return ErrNilCommand
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.currentLocked()
	if err != nil {
		return err
	}
	cur.queue.Push(cmd)
	return nil
}

// Pending returns the number of commands queued since the last frame.
// It is zero for an inactive context.
func (c *Context) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.state.(*current); ok {
		return cur.queue.Len()
	}
	return 0
}

// Transform returns a copy of the transform state of c.
// Queued commands are not reflected until the frame is finalized.
func (c *Context) Transform() (transform.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return transform.State{}, ErrContextDestroyed
	}
	return *c.state.transformState(), nil
}

// Binding describes where a current context is bound.
type Binding struct {
	Thread ThreadID
	Read   surface.Handle
	Draw   surface.Handle
}

// Binding returns the thread and surfaces c is bound to.
// ok is false if c is not current.
func (c *Context) Binding() (b Binding, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.state.(*current)
	if !ok {
		return Binding{}, false
	}
	return Binding{Thread: cur.thread, Read: cur.read, Draw: cur.draw}, true
}

// IsCurrent reports whether c is current on some thread.
func (c *Context) IsCurrent() bool {
	_, ok := c.Binding()
	return ok
}

// currentLocked returns the current state of c. c.mu must be held.
func (c *Context) currentLocked() (*current, error) {
	if c.destroyed {
		return nil, ErrContextDestroyed
	}
	cur, ok := c.state.(*current)
	if !ok {
		return nil, ErrNotCurrent
	}
	return cur, nil
}
