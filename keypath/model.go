package keypath

import (
	"fmt"
	"maps"
	"slices"
)

// Model is a map backed observable object. The zero value is ready to use
// and Model is meant to be embedded:
//
//	type Person struct {
//		keypath.Model
//	}
//
// Missing keys read as nil. Values that are themselves Objects make dotted
// paths traverse into them.
type Model struct {
	values map[string]any
	notifier
}

var (
	_ Object     = (*Model)(nil)
	_ Observable = (*Model)(nil)
)

// NewModel returns a Model holding a copy of values.
func NewModel(values map[string]any) *Model {
	return &Model{values: maps.Clone(values)}
}

// Get returns the value stored under a single key.
func (m *Model) Get(key string) any {
	return m.values[key]
}

// Value resolves a dotted key path.
func (m *Model) Value(keyPath string) (any, error) {
	p, err := Parse(keyPath)
	if err != nil {
		return nil, err
	}

	return m.ValueForKeyPath(p)
}

// Set assigns a dotted key path and notifies observers.
func (m *Model) Set(keyPath string, value any) error {
	p, err := Parse(keyPath)
	if err != nil {
		return err
	}

	return m.SetValueForKeyPath(p, value)
}

// Keys returns the stored keys in sorted order.
func (m *Model) Keys() []string {
	return slices.Sorted(maps.Keys(m.values))
}

// ValueForKeyPath reads the value at path, descending into nested objects.
func (m *Model) ValueForKeyPath(path Path) (any, error) {
	if path.IsEmpty() {
		return nil, ErrEmptyPath
	}

	v := m.values[path.Head()]
	if path.Len() == 1 {
		return v, nil
	}

	return valueAt(v, path.Rest())
}

// SetValueForKeyPath stores value at path and notifies observers of the key.
func (m *Model) SetValueForKeyPath(path Path, value any) error {
	if path.IsEmpty() {
		return ErrEmptyPath
	}

	key := path.Head()

	if path.Len() == 1 {
		if m.values == nil {
			m.values = make(map[string]any)
		}

		m.values[key] = value
		m.notify(key, value)

		return nil
	}

	next, ok := m.values[key].(Object)
	if !ok || isNil(next) {
		return &PathError{Path: path, Segment: key, Err: fmt.Errorf("%w: %T", ErrNotTraversable, m.values[key])}
	}

	return next.SetValueForKeyPath(path.Rest(), value)
}

// ObserveKeyPath subscribes fn to changes at path.
func (m *Model) ObserveKeyPath(path Path, fn func(value any)) (func(), error) {
	return m.observe(path, m.values[path.Head()], fn)
}

// ObserverCount returns the number of live observations of a single key.
func (m *Model) ObserverCount(key string) int {
	return m.observerCount(key)
}
