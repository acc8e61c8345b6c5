package binding

import (
	"fmt"
	"runtime"
	"unsafe"
	"weak"
)

// Ref is a non-owning reference to a host object. The zero Ref refers to
// nothing.
type Ref struct {
	key    any
	load   func() any
	attach func(cleanup func(key any)) bool
	name   string
}

// To returns a weak reference to obj. A nil obj gives the zero Ref.
//
// T must not be a zero-sized type: distinct zero-sized values may share an
// address and could not be told apart.
func To[T any](obj *T) Ref {
	if obj == nil {
		return Ref{}
	}

	if unsafe.Sizeof(*obj) == 0 {
		panic(fmt.Sprintf("binding: cannot reference zero-sized %T", obj))
	}

	wp := weak.Make(obj)

	return Ref{
		key: wp,
		load: func() any {
			if p := wp.Value(); p != nil {
				return p
			}

			return nil
		},
		attach: func(cleanup func(key any)) bool {
			p := wp.Value()
			if p == nil {
				return false
			}

			runtime.AddCleanup(p, cleanup, any(wp))

			return true
		},
		name: fmt.Sprintf("%T", obj),
	}
}

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool {
	return r.key == nil
}

// Object returns the referenced object, or nil when it has been collected.
func (r Ref) Object() any {
	if r.load == nil {
		return nil
	}

	return r.load()
}

// Alive reports whether the referenced object still exists.
func (r Ref) Alive() bool {
	return r.Object() != nil
}

// Is reports whether r and other refer to the same object.
func (r Ref) Is(other Ref) bool {
	return r.key != nil && r.key == other.key
}

// String returns the type name of the referenced object.
func (r Ref) String() string {
	if r.IsZero() {
		return "<nil>"
	}

	return r.name
}
