package declare

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"kvbind/binding"
)

var (
	ErrEmptyName     = errors.New("object name is empty")
	ErrNilObject     = errors.New("object is nil")
	ErrDuplicateName = errors.New("object name already registered")
)

// Scope maps the object names used in documents to objects. It only holds
// weak references: the host keeps the objects alive.
type Scope struct {
	objects map[string]binding.Ref
}

// NewScope creates a new empty scope.
func NewScope() *Scope {
	return &Scope{objects: make(map[string]binding.Ref)}
}

// Add registers ref under name.
func (s *Scope) Add(name string, ref binding.Ref) error {
	switch {
	case name == "":
		return ErrEmptyName
	case ref.IsZero():
		return fmt.Errorf("%w: %s", ErrNilObject, name)
	}

	if _, ok := s.objects[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	s.objects[name] = ref

	return nil
}

// Register adds obj under name.
func Register[T any](s *Scope, name string, obj *T) error {
	return s.Add(name, binding.To(obj))
}

// Lookup returns the reference registered under name.
func (s *Scope) Lookup(name string) (binding.Ref, bool) {
	ref, ok := s.objects[name]
	return ref, ok
}

// Names returns the registered names, sorted.
func (s *Scope) Names() []string {
	return slices.Sorted(maps.Keys(s.objects))
}
