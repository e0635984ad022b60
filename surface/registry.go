// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Errors returned by Open.
var (
	// ErrUnknownBackend is returned for a backend name nobody registered.
	ErrUnknownBackend = errors.New("surface: unknown backend")

	// ErrBackendUnavailable is returned when a backend cannot run here,
	// such as the X11 backend without $DISPLAY.
	ErrBackendUnavailable = errors.New("surface: backend unavailable")
)

// Factory opens a panel window with the given options.
type Factory func(opts Options) (Target, error)

// Backend is a way of opening panel windows.
type Backend struct {
	// Name selects the backend in Open, e.g. "x11" or "image".
	Name string

	// Priority orders Backends; windowing systems use 100, the in-memory
	// backend 10.
	Priority int

	// Open creates a Target.
	Open Factory

	// Available reports whether Open can work on this system. Nil means
	// always.
	Available func() bool
}

// BackendStatus is a registered backend as reported by Backends.
type BackendStatus struct {
	Name      string
	Priority  int
	Available bool
}

type registry struct {
	mu       sync.Mutex
	backends map[string]Backend
}

var backends = &registry{}

// Register adds a backend, replacing one registered under the same name.
// Backends register themselves from init.
func Register(b Backend) {
	backends.register(b)
}

// Backends lists the registered backends, highest priority first.
func Backends() []BackendStatus {
	return backends.list()
}

// Open creates a Target with the named backend.
func Open(name string, opts Options) (Target, error) {
	return backends.open(name, opts)
}

func (r *registry) register(b Backend) {
	if b.Available == nil {
		b.Available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backends == nil {
		r.backends = make(map[string]Backend)
	}
	r.backends[b.Name] = b
}

func (r *registry) list() []BackendStatus {
	r.mu.Lock()
	all := make([]Backend, 0, len(r.backends))
	for _, b := range r.backends {
		all = append(all, b)
	}
	r.mu.Unlock()

	slices.SortFunc(all, func(a, b Backend) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	out := make([]BackendStatus, len(all))
	for i, b := range all {
		out[i] = BackendStatus{Name: b.Name, Priority: b.Priority, Available: b.Available()}
	}
	return out
}

func (r *registry) open(name string, opts Options) (Target, error) {
	r.mu.Lock()
	b, ok := r.backends[name]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if !b.Available() {
		return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, name)
	}
	t, err := b.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("surface: open %s window: %w", name, err)
	}
	return t, nil
}

func init() {
	Register(Backend{
		Name:     "image",
		Priority: 10,
		Open: func(opts Options) (Target, error) {
			return NewImageTarget(max(opts.Screen, 0), opts.Width, opts.Height), nil
		},
	})
}
