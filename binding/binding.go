package binding

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kvbind/internal/metrics"
	"kvbind/keypath"
)

// Binding is implemented by *ValueBinding and *ActionBinding.
type Binding interface {
	// ID is unique per binding.
	ID() string
	// IsActive reports whether the binding still propagates.
	IsActive() bool
	// Unbind stops the binding. It is idempotent.
	Unbind()
	String() string
}

// endpoint is one side of a binding as seen by the binding: a weak key and
// loader, never the object.
type endpoint struct {
	key  any
	load func() any
	name string
}

func endpointOf(ref Ref) endpoint {
	return endpoint{key: ref.key, load: ref.load, name: ref.name}
}

// object loads the endpoint. ok is false once the object has been collected.
func (e endpoint) object() (keypath.Object, bool) {
	v := e.load()
	if v == nil {
		return nil, false
	}

	obj, ok := v.(keypath.Object)

	return obj, ok
}

func (e endpoint) value() any {
	return e.load()
}

func (e endpoint) alive() bool {
	return e.load() != nil
}

// tracked is implemented by bindings that hold weak endpoints.
type tracked interface {
	Binding
	// dead reports an active binding with at least one collected endpoint.
	dead() bool
	// orphaned reports an active binding whose endpoints are all collected.
	orphaned() bool
	// dangle unbinds a dead binding.
	dangle()
	// retire deactivates an orphaned binding. Nothing else can reach its
	// endpoints, so it only settles the binding state and metrics.
	retire()
}

// prune unbinds the dead bindings of list and returns the rest.
func prune(list []Binding) []Binding {
	return slices.DeleteFunc(list, func(b Binding) bool {
		t, ok := b.(tracked)
		if !ok || !t.dead() {
			return false
		}

		t.dangle()

		return true
	})
}

// dropDangling counts and logs the deactivation of a dead binding.
func dropDangling(b Binding) {
	metrics.DroppedUpdates.WithLabelValues(reason(ErrDanglingEndpoint)).Inc()
	log.Debug().Str("binding", b.ID()).Err(ErrDanglingEndpoint).Msg("deactivating")
}

func newID() string {
	return uuid.NewString()
}

// resolve loads a Ref for binding construction.
func resolve(role string, ref Ref) (any, error) {
	if ref.IsZero() {
		return nil, invalid("%s object is nil", role)
	}

	v := ref.Object()
	if v == nil {
		return nil, invalid("%s object no longer exists", role)
	}

	return v, nil
}

func resolveObject(role string, ref Ref) (keypath.Object, error) {
	v, err := resolve(role, ref)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(keypath.Object)
	if !ok {
		return nil, invalid("%s %T does not implement keypath.Object", role, v)
	}

	return obj, nil
}

func parsePath(role, keyPath string) (keypath.Path, error) {
	p, err := keypath.Parse(keyPath)
	if err != nil {
		return keypath.Path{}, invalid("%s key path: %v", role, err)
	}

	return p, nil
}

// report hands a dropped update to handler or logs it.
func report(b Binding, kind string, dir Direction, err error, handler ErrorHandler) {
	metrics.DroppedUpdates.WithLabelValues(reason(err)).Inc()

	ue := &UpdateError{Binding: b, Direction: dir, Err: err}
	if handler != nil {
		handler(ue)
		return
	}

	log.Warn().
		Str("binding", b.ID()).
		Str("kind", kind).
		Stringer("direction", dir).
		Err(err).
		Msg("update dropped")
}

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", errRecovered, err)
	}

	return fmt.Errorf("%w: %v", errRecovered, r)
}
