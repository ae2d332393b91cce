// Package backend hosts the rendering backend registry and the software
// (CPU compositing) backend. The wgpu implementation is in backend/native.
package backend

import (
	"errors"
	"sync"

	"github.com/storyglyph/storyglyph/gpucore"
)

// Backend names.
const (
	Native   = "native"
	Software = "software"
)

// ErrNotAvailable is returned when no backend is registered.
var ErrNotAvailable = errors.New("backend: no backend available")

// Factory creates a new backend instance.
type Factory func() gpucore.Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// First available wins: GPU when compiled in, CPU fallback otherwise.
	priority = []string{Native, Software}
)

// Register registers a backend factory under name, replacing any previous
// registration. Typically called from init() in backend packages.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// Get returns a new backend instance by name, or nil if the name is not
// registered.
func Get(name string) gpucore.Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend in priority order, or nil
// when nothing is registered.
func Default() gpucore.Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}
	for _, factory := range backends {
		if b := factory(); b != nil {
			return b
		}
	}
	return nil
}
