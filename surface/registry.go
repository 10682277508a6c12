// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"sync"
)

// Factory creates a new Surface with the given options.
type Factory func(opts Options) (Surface, error)

// Backend is one registered surface implementation.
type Backend struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend can currently produce surfaces.
	Available func() bool
}

// Registry selects a backend for new surfaces.
//
// The zero value is an empty registry: every NewSurface call fails with
// ErrNoBackend, which is how a host without any drawing support is modelled.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]*Backend
}

// globalRegistry holds the built-in "image" backend.
var globalRegistry = &Registry{}

// Default returns the process-wide registry.
func Default() *Registry {
	return globalRegistry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]*Backend)}
}

// Register adds a backend to the global registry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// NewSurface creates a surface using the best available global backend.
func NewSurface(width, height int) (Surface, error) {
	return globalRegistry.NewSurface(Options{Width: width, Height: height})
}

// Register adds a backend to this registry. If available is nil the backend
// is always available. Registering an existing name replaces the entry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backends == nil {
		r.backends = make(map[string]*Backend)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.backends[name] = &Backend{
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

	delete(r.backends, name)
}

// Available returns names of available backends, highest priority first.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*Backend
	for _, b := range r.backends {
		if b.Available() {
			list = append(list, b)
		}
	}
	slices.SortFunc(list, func(a, b *Backend) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})

	names := make([]string, len(list))
	for i, b := range list {
		names[i] = b.Name
	}
	return names
}

// NewSurface creates a surface using the best available backend. Backends
// are tried in priority order; the last error is returned if all fail.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackend
	}

	var lastErr error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewSurfaceByName creates a surface using a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	b, ok := r.backends[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendError{Name: name, Reason: "not registered"}
	}
	if !b.Available() {
		return nil, &BackendError{Name: name, Reason: "unavailable"}
	}
	return b.Factory(opts)
}

// ErrNoBackend is returned when no backend can provide a surface.
var ErrNoBackend = errors.New("surface: no backend available")

// BackendError reports a named backend that cannot be used.
type BackendError struct {
	Name   string
	Reason string
}

func (e *BackendError) Error() string {
	return "surface: backend " + e.Name + ": " + e.Reason
}

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)
}
