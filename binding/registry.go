package binding

import (
	"maps"
	"slices"
	"sync"

	"kvbind/internal/common"
)

type registryKey struct {
	keyPath string
	group   Group
}

// Registry indexes the bindings attached to one object by key path and
// group. Bindings under one key keep their registration order. It is safe
// for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[registryKey][]Binding
}

// NewRegistry creates a new empty binding registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[registryKey][]Binding)}
}

// Add records b under keyPath and group. Adding the same binding twice has
// no effect.
func (r *Registry) Add(b Binding, keyPath string, group Group) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := registryKey{keyPath, group}
	if slices.Contains(r.entries[k], b) {
		return
	}

	r.entries[k] = append(r.entries[k], b)
}

// Remove deletes b from keyPath and group. Removing an absent binding is a no-op.
func (r *Registry) Remove(b Binding, keyPath string, group Group) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := registryKey{keyPath, group}

	list := r.entries[k]

	i := slices.Index(list, b)
	if i < 0 {
		return
	}

	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(r.entries, k)
		return
	}

	r.entries[k] = list
}

// Query returns a copy of the bindings under keyPath and group.
func (r *Registry) Query(keyPath string, group Group) []Binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.entries[registryKey{keyPath, group}])
}

// Keys returns the key paths that have bindings in group, sorted.
func (r *Registry) Keys(group Group) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var keys []string

	for k := range maps.Keys(r.entries) {
		if k.group == group {
			keys = append(keys, k.keyPath)
		}
	}

	slices.Sort(keys)

	return keys
}

// All returns every registered binding once, in group then key order.
func (r *Registry) All() []Binding {
	var all []Binding

	for _, g := range Groups() {
		for _, key := range r.Keys(g) {
			all = common.AppendUnique(all, r.Query(key, g)...)
		}
	}

	return all
}

// Len returns the number of (key path, group, binding) entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, list := range r.entries {
		n += len(list)
	}

	return n
}
