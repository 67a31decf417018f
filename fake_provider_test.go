// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

import (
	"fmt"
	"sync"

	"github.com/gogpu/glsoft/surface"
)

// call is one provider call seen by recordingProvider.
type call struct {
	op             string
	surface        surface.Handle
	x0, y0, x1, y1 int
}

func (c call) String() string {
	if c.op == "line" {
		return fmt.Sprintf("line(%d,%d)-(%d,%d)", c.x0, c.y0, c.x1, c.y1)
	}
	return c.op
}

// recordingProvider records every call and can be told to fail.
type recordingProvider struct {
	mu            sync.Mutex
	width, height int
	calls         []call
	failLine      error
	failFlush     error
	failSize      error
}

func newRecordingProvider(w, h int) *recordingProvider {
	return &recordingProvider{width: w, height: h}
}

func (p *recordingProvider) Size(surface.Handle) (int, int, error) {
	if p.failSize != nil {
		return 0, 0, p.failSize
	}
	return p.width, p.height, nil
}

func (p *recordingProvider) Clear(h surface.Handle) error {
	p.record(call{op: "clear", surface: h})
	return nil
}

func (p *recordingProvider) DrawLine(h surface.Handle, x0, y0, x1, y1 int) error {
	p.record(call{op: "line", surface: h, x0: x0, y0: y0, x1: x1, y1: y1})
	return p.failLine
}

func (p *recordingProvider) Flush(h surface.Handle) error {
	p.record(call{op: "flush", surface: h})
	return p.failFlush
}

func (p *recordingProvider) record(c call) {
	p.mu.Lock()
	p.calls = append(p.calls, c)
	p.mu.Unlock()
}

// ops returns the calls as strings and resets the log.
func (p *recordingProvider) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	for i, c := range p.calls {
		out[i] = c.String()
	}
	p.calls = nil
	return out
}
