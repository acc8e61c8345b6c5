package binding

import "sync"

// entry is the per-object state kept in the side table. It must never hold
// the object itself.
type entry struct {
	registry          *Registry
	assertionDisabled bool
	retained          map[*ValueBinding]any
}

// table associates objects with their entries without owning them. Entries
// are dropped by a runtime cleanup once the object is collected.
type table struct {
	mu      sync.Mutex
	entries map[any]*entry
}

var owners = &table{entries: make(map[any]*entry)}

// ensure returns the entry for ref, creating it when needed. It returns nil
// for a zero or collected ref.
func (t *table) ensure(ref Ref) *entry {
	if ref.IsZero() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[ref.key]; ok {
		return e
	}

	if !ref.attach(t.forget) {
		return nil
	}

	e := &entry{registry: NewRegistry()}
	t.entries[ref.key] = e

	return e
}

func (t *table) lookup(key any) *entry {
	if key == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.entries[key]
}

func (t *table) registry(key any) *Registry {
	if e := t.lookup(key); e != nil {
		return e.registry
	}

	return nil
}

// forget drops the entry of a collected object and retires the bindings
// that no longer have any live endpoint.
func (t *table) forget(key any) {
	t.mu.Lock()
	e := t.entries[key]
	delete(t.entries, key)
	t.mu.Unlock()

	if e == nil {
		return
	}

	for _, b := range e.registry.All() {
		if tb, ok := b.(tracked); ok && tb.orphaned() {
			tb.retire()
		}
	}
}

func (t *table) setAssertionDisabled(ref Ref, disabled bool) {
	e := t.ensure(ref)
	if e == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e.assertionDisabled = disabled
}

func (t *table) assertionDisabled(key any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[key]; ok {
		return e.assertionDisabled
	}

	return false
}

// retain keeps obj alive for as long as the object behind key is alive.
func (t *table) retain(key any, b *ValueBinding, obj any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		return
	}

	if e.retained == nil {
		e.retained = make(map[*ValueBinding]any)
	}

	e.retained[b] = obj
}

func (t *table) release(key any, b *ValueBinding) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[key]; ok {
		delete(e.retained, b)
	}
}

func (t *table) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
