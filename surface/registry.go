// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image/color"
	"sort"
	"sync"
)

// Options describes the surface a factory should create.
type Options struct {
	// Width and Height are the requested size in pixels. Providers that
	// own a fixed-size output (a terminal) may ignore them.
	Width, Height int

	// Antialias requests antialiased lines where the provider supports it.
	Antialias bool

	// Foreground is the line color; nil means the provider default.
	Foreground color.Color

	// Background is the clear color; nil means the provider default.
	Background color.Color
}

// Factory creates a provider together with the surface it should draw
// into. Implementations should validate options and return descriptive
// errors.
type Factory func(opts Options) (Provider, Handle, error)

// RegistryEntry represents a registered provider backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 10: in-memory software surfaces
	//   - 5: surfaces that take over a device (terminal)
	Priority int

	// Factory creates provider instances.
	Factory Factory

	// Available reports if the backend is available on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered provider backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("terminal", 5, terminalFactory, nil)
//	}
//
// Example usage:
//
//	p, h, err := surface.NewSurfaceByName("image", surface.Options{Width: 300, Height: 300})
//	// or auto-select best available:
//	p, h, err := surface.NewSurface(surface.Options{Width: 300, Height: 300})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewSurface.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// NewSurface creates a surface using the best available backend.
func NewSurface(opts Options) (Provider, Handle, error) {
	return globalRegistry.NewSurface(opts)
}

// NewSurfaceByName creates a surface using a specific named backend.
func NewSurfaceByName(name string, opts Options) (Provider, Handle, error) {
	return globalRegistry.NewSurfaceByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// NewSurface creates a surface using the best available backend,
// falling back to lower priorities when a factory fails.
func (r *Registry) NewSurface(opts Options) (Provider, Handle, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, Nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		p, h, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return p, h, nil
		}
		lastErr = err
	}
	return nil, Nil, lastErr
}

// NewSurfaceByName creates a surface using a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Provider, Handle, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, Nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, Nil, &BackendUnavailableError{Name: name}
	}
	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ErrNoBackendAvailable is returned when no provider backends are
// registered or available on the current system.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// init registers the built-in image backend.
func init() {
	Register("image", 10, func(opts Options) (Provider, Handle, error) {
		p := NewImageProvider(
			WithAntialias(opts.Antialias),
			WithColors(opts.Foreground, opts.Background),
		)
		return p, p.NewSurface(opts.Width, opts.Height), nil
	}, nil)
}
