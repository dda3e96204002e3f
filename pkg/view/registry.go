package view

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Contexter is implemented by anything that can hand out a template context.
// *View implements it, so types embedding *View do too.
type Contexter interface {
	TemplateContext() *View
}

// Factory builds a context of one registered kind from caller supplied
// arguments. Factories start from scratch: nothing is inherited from the
// template that asked for them.
type Factory func(e *Engine, args ...any) (Contexter, error)

// Registry maps kind names to factories, replacing construction by type name.
// Registration is expected at start-up; lookups are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under kind. Duplicate kinds return an error.
func (r *Registry) Register(kind string, factory Factory) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("view: factory kind is required")
	}
	if factory == nil {
		return fmt.Errorf("view: factory for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("view: factory %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Get retrieves the factory registered under kind.
func (r *Registry) Get(kind string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[strings.TrimSpace(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return factory, nil
}

// Has reports whether a factory is registered under kind.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[strings.TrimSpace(kind)]
	return ok
}

// List returns the registered kinds in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
