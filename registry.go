// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/glsoft/surface"
)

// ThreadID identifies a caller thread within a Registry. Go does not
// expose goroutine identity, so callers allocate an ID per logical thread
// with NewThreadID and keep it for the thread's lifetime.
type ThreadID uint64

var lastThreadID atomic.Uint64

// NewThreadID returns a ThreadID distinct from every other ID returned in
// this process.
func NewThreadID() ThreadID {
	return ThreadID(lastThreadID.Add(1))
}

// Registry maps each thread to the context current on it, if any.
//
// A context is current on at most one thread. All make-current
// transitions of a Registry are serialized. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu    sync.Mutex
	slots map[ThreadID]*Context
}

// NewRegistry returns a Registry with no current contexts.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[ThreadID]*Context)}
}

// Thread returns the view of r for thread id.
func (r *Registry) Thread(id ThreadID) *Thread {
	return &Thread{registry: r, id: id}
}

// NewThread allocates a fresh ThreadID and returns its view of r.
func (r *Registry) NewThread() *Thread {
	return r.Thread(NewThreadID())
}

// Current returns the context current on thread id, or nil.
func (r *Registry) Current(id ThreadID) *Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots[id]
}

// Len returns the number of threads with a current context.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// MakeCurrent binds ctx to thread id with the given read and draw
// surfaces. A nil ctx detaches whatever is current on id.
//
// The previous context of id, if any, is detached first and returns to the
// inactive state with its transform state preserved. The transition fails,
// changing nothing, when:
//   - ctx is current on another thread (ErrAlreadyBound)
//   - the context being detached or rebound has queued commands (ErrDirtyQueue)
//   - ctx has been destroyed (ErrContextDestroyed)
func (r *Registry) MakeCurrent(id ThreadID, ctx *Context, read, draw surface.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.slots[id]
	switch {
	case ctx == nil:
		return r.detach(id, prev)
	case ctx == prev:
		return rebind(ctx, read, draw)
	}

	unlock := lockPair(prev, ctx)
	if ctx.destroyed {
		unlock()
		return ErrContextDestroyed
	}
	if _, ok := ctx.state.(*current); ok {
		unlock()
		return ErrAlreadyBound
	}
	var prevCur *current
	if prev != nil {
		prevCur = prev.state.(*current)
		if !prevCur.queue.Empty() {
			unlock()
			return &DirtyQueueError{Pending: prevCur.queue.Len()}
		}
	}

	if prev != nil {
		prev.state = &inactive{transform: prevCur.transform}
	}
	cur := &current{
		read:      read,
		draw:      draw,
		thread:    id,
		transform: ctx.state.(*inactive).transform,
	}
	cur.queue.Grow(ctx.hint)
	ctx.state = cur
	ctx.refs.Add(1)
	r.slots[id] = ctx
	unlock()

	if prev != nil {
		Logger().Debug("glsoft: context detached", "context", prev.name(), "thread", uint64(id))
		prev.Release()
	}
	Logger().Debug("glsoft: context made current", "context", ctx.name(), "thread", uint64(id),
		"read", read.String(), "draw", draw.String())
	return nil
}

// detach makes prev inactive and clears the slot of id. r.mu must be held.
func (r *Registry) detach(id ThreadID, prev *Context) error {
	if prev == nil {
		return nil
	}

	prev.mu.Lock()
	cur := prev.state.(*current)
	if !cur.queue.Empty() {
		n := cur.queue.Len()
		prev.mu.Unlock()
		return &DirtyQueueError{Pending: n}
	}
	prev.state = &inactive{transform: cur.transform}
	prev.mu.Unlock()

	delete(r.slots, id)
	Logger().Debug("glsoft: context detached", "context", prev.name(), "thread", uint64(id))
	prev.Release()
	return nil
}

// rebind changes the surfaces of a context that stays current on the same
// thread. Changing surfaces requires an empty queue.
func rebind(ctx *Context, read, draw surface.Handle) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	cur := ctx.state.(*current)
	if cur.read == read && cur.draw == draw {
		return nil
	}
	if !cur.queue.Empty() {
		return &DirtyQueueError{Pending: cur.queue.Len()}
	}
	cur.read, cur.draw = read, draw
	return nil
}

// lockPair locks a and b (either may be nil) in ID order and returns the
// matching unlock function.
func lockPair(a, b *Context) (unlock func()) {
	switch {
	case a == nil:
		b.mu.Lock()
		return b.mu.Unlock
	case b == nil:
		a.mu.Lock()
		return a.mu.Unlock
	}
	if a.id > b.id {
		a, b = b, a
	}
	a.mu.Lock()
	b.mu.Lock()
	return func() {
		b.mu.Unlock()
		a.mu.Unlock()
	}
}
