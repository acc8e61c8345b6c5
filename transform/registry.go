package transform

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Resolver looks transformers up by name.
type Resolver interface {
	Lookup(name string) (Transformer, error)
}

// Registry holds named transformers. It is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	transformers map[string]Transformer
}

var _ Resolver = (*Registry)(nil)

// Default is the process-wide registry used when a binding names its
// transformer without supplying a Resolver.
var Default = newDefault()

func newDefault() *Registry {
	r := NewRegistry()
	r.transformers["Identity"] = Identity
	r.transformers["NegateBoolean"] = NegateBoolean
	r.transformers["IsNil"] = IsNil
	r.transformers["IsNotNil"] = IsNotNil

	return r
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		transformers: make(map[string]Transformer),
	}
}

// Register adds or replaces the transformer registered under name.
func (r *Registry) Register(name string, t Transformer) error {
	if name == "" {
		return errors.New("transformer name is empty")
	}

	if t == nil {
		return fmt.Errorf("transformer %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.transformers[name] = t

	return nil
}

// Unregister removes name. Removing an unknown name does nothing.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.transformers, name)
}

// Get returns the transformer registered under name, or nil if not found.
func (r *Registry) Get(name string) Transformer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.transformers[name]
}

// Lookup is like Get but reports a missing name as ErrUnknownTransformer.
func (r *Registry) Lookup(name string) (Transformer, error) {
	if t := r.Get(name); t != nil {
		return t, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownTransformer, name)
}

// Has returns true if a transformer with the given name exists.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.transformers))
}

// Clone returns an independent registry with the same entries.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{transformers: maps.Clone(r.transformers)}
}

type chain []Resolver

// Chain returns a Resolver that tries each resolver in order. Nil
// resolvers are skipped.
func Chain(resolvers ...Resolver) Resolver {
	var c chain

	for _, r := range resolvers {
		if r != nil {
			c = append(c, r)
		}
	}

	return c
}

func (c chain) Lookup(name string) (Transformer, error) {
	for _, r := range c {
		if t, err := r.Lookup(name); err == nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownTransformer, name)
}

// Names returns the names known to the chained resolvers that can list
// them, sorted and without duplicates.
func (c chain) Names() []string {
	var names []string

	for _, r := range c {
		if n, ok := r.(interface{ Names() []string }); ok {
			names = append(names, n.Names()...)
		}
	}

	slices.Sort(names)

	return slices.Compact(names)
}
