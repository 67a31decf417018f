// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsoft

// ContextOption configures a Context during creation.
//
// Example:
//
//	ctx := glsoft.NewContext(glsoft.WithLabel("hud"), glsoft.WithQueueHint(256))
type ContextOption func(*contextOptions)

type contextOptions struct {
	label     string
	queueHint int
}

func defaultContextOptions() contextOptions {
	return contextOptions{}
}

// WithLabel names the context in log output and String.
func WithLabel(label string) ContextOption {
	return func(o *contextOptions) {
		o.label = label
	}
}

// WithQueueHint preallocates room for n commands each time the context
// becomes current. Use it when the number of commands per frame is known.
func WithQueueHint(n int) ContextOption {
	return func(o *contextOptions) {
		o.queueHint = n
	}
}
