package generator

import (
	"sort"
	"sync"
)

// Factory builds a Generator. Factories run once per Load; a factory that
// returns nil is skipped.
type Factory func() Generator

// Registry manages the available generator factories. It is populated at
// bootstrap and queried read-only during a render pass.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a generator factory under name.
// If a factory with the same name exists, it is overwritten.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Names returns the registered generator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load instantiates every registered generator allowed by the policy.
// Filtered names and nil instances are silently skipped; Load itself never
// fails. The result is ordered by name so a pass consumes seeds in a stable
// order regardless of map iteration.
func (r *Registry) Load(policy Policy) []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	gens := make([]Generator, 0, len(names))
	for _, name := range names {
		if !policy.Allows(name) {
			continue
		}
		gen := r.factories[name]()
		if gen == nil {
			continue
		}
		gens = append(gens, gen)
	}
	return gens
}
