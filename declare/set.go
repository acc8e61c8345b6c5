package declare

import "kvbind/binding"

type member struct {
	name    string
	binding binding.Binding
}

// Set holds the bindings created by Apply, in document order.
type Set struct {
	members []member
}

func (s *Set) add(name string, b binding.Binding) {
	s.members = append(s.members, member{name: name, binding: b})
}

// Len returns the number of bindings in the set.
func (s *Set) Len() int {
	return len(s.members)
}

// Bindings returns the bindings in declaration order.
func (s *Set) Bindings() []binding.Binding {
	out := make([]binding.Binding, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m.binding)
	}

	return out
}

// Names returns the declaration labels in document order.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m.name)
	}

	return out
}

// Lookup returns the binding created for the named declaration, or nil.
func (s *Set) Lookup(name string) binding.Binding {
	for _, m := range s.members {
		if m.name == name {
			return m.binding
		}
	}

	return nil
}

// UnbindAll tears down every binding of the set and returns how many were
// still active.
func (s *Set) UnbindAll() int {
	n := 0

	for _, m := range s.members {
		if m.binding.IsActive() {
			m.binding.Unbind()
			n++
		}
	}

	return n
}
