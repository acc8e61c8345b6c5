package keypath

import (
	"reflect"
	"slices"
)

type observation struct {
	fn     func(value any)
	active bool
}

// notifier keeps per-key observer lists for a host object.
type notifier struct {
	observers map[string][]*observation
}

// add registers fn for key. The returned cancel only marks the observation
// inactive; it is pruned on the next add or notify for that key.
func (n *notifier) add(key string, fn func(value any)) func() {
	if n.observers == nil {
		n.observers = make(map[string][]*observation)
	}

	n.prune(key)

	obs := &observation{fn: fn, active: true}
	n.observers[key] = append(n.observers[key], obs)

	return func() { obs.active = false }
}

// notify delivers value to the observers of key in registration order.
// Observers added during delivery are not called for this change.
func (n *notifier) notify(key string, value any) {
	snapshot := slices.Clone(n.observers[key])
	for _, obs := range snapshot {
		if obs.active {
			obs.fn(value)
		}
	}

	n.prune(key)
}

func (n *notifier) prune(key string) {
	list, ok := n.observers[key]
	if !ok {
		return
	}

	list = slices.DeleteFunc(list, func(obs *observation) bool { return !obs.active })
	if len(list) == 0 {
		delete(n.observers, key)
		return
	}

	n.observers[key] = list
}

func (n *notifier) observerCount(key string) int {
	count := 0

	for _, obs := range n.observers[key] {
		if obs.active {
			count++
		}
	}

	return count
}

// observe subscribes fn to path. head is the current value of the first
// segment and seeds the chain for dotted paths.
func (n *notifier) observe(path Path, head any, fn func(value any)) (func(), error) {
	if path.IsEmpty() {
		return nil, ErrEmptyPath
	}

	if path.Len() == 1 {
		return n.add(path.Head(), fn), nil
	}

	c := &chain{rest: path.Rest(), fn: fn}
	c.attach(head)
	cancel := n.add(path.Head(), c.headChanged)

	return func() {
		cancel()
		c.detach()
	}, nil
}

// chain forwards changes of the remaining path below an intermediate value
// and follows the intermediate value when it is replaced.
type chain struct {
	rest   Path
	fn     func(value any)
	cancel func()
}

func (c *chain) attach(v any) {
	o, ok := v.(Observable)
	if !ok {
		return
	}

	if cancel, err := o.ObserveKeyPath(c.rest, c.fn); err == nil {
		c.cancel = cancel
	}
}

func (c *chain) detach() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *chain) headChanged(v any) {
	c.detach()
	c.attach(v)

	value, err := valueAt(v, c.rest)
	if err != nil {
		value = nil
	}

	c.fn(value)
}

// valueAt resolves path below v. Objects resolve the path themselves, plain
// structs and struct pointers are walked by field. A nil intermediate value
// resolves to nil.
func valueAt(v any, path Path) (any, error) {
	for i, seg := range path.segments {
		if isNil(v) {
			return nil, nil
		}

		if obj, ok := v.(Object); ok {
			return obj.ValueForKeyPath(path.from(i))
		}

		rv := reflect.Indirect(reflect.ValueOf(v))
		if rv.Kind() != reflect.Struct {
			return nil, &PathError{Path: path, Segment: seg, Err: ErrNotTraversable}
		}

		field, ok := fieldByKey(rv, seg)
		if !ok {
			return nil, &PathError{Path: path, Segment: seg, Err: ErrUnknownKey}
		}

		v = field.Interface()
	}

	return v, nil
}

// PathError records the segment at which resolving a path failed.
type PathError struct {
	Path    Path
	Segment string
	Err     error
}

// Error names the failing segment and the full path.
func (e *PathError) Error() string {
	return e.Err.Error() + ": " + e.Segment + " in " + e.Path.String()
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
