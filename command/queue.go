// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package command

import "slices"

// Queue is an ordered, append-only sequence of commands collected between
// frame boundaries. Insertion order is significant: consecutive vertices
// define line connectivity.
//
// The zero value is an empty queue ready to use. A Queue is not safe for
// concurrent use; the owning context serializes access.
type Queue struct {
	cmds []Command
}

// Push appends cmd to the end of the queue.
func (q *Queue) Push(cmd Command) {
	q.cmds = append(q.cmds, cmd)
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Empty reports whether the queue holds no commands.
func (q *Queue) Empty() bool {
	return len(q.cmds) == 0
}

// Drain removes and returns every queued command in enqueue order.
// The queue is empty afterwards; the returned slice is owned by the caller.
func (q *Queue) Drain() []Command {
	cmds := q.cmds
	q.cmds = nil
	return cmds
}

// Grow ensures room for at least n more commands without reallocating.
func (q *Queue) Grow(n int) {
	if n > 0 {
		q.cmds = slices.Grow(q.cmds, n)
	}
}
