package keypath

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKey     = errors.New("unknown key")
	ErrNotTraversable = errors.New("value is not traversable")
	ErrNotObservable  = errors.New("object is not observable")
)

// Object is a host object whose attributes are addressed by key path.
type Object interface {
	ValueForKeyPath(path Path) (any, error)
	SetValueForKeyPath(path Path, value any) error
}

// Observable is implemented by objects that report attribute changes.
// The returned cancel function stops delivery and is safe to call twice.
type Observable interface {
	ObserveKeyPath(path Path, fn func(value any)) (cancel func(), err error)
}

// Observer subscribes to key path changes of objects.
//
// Implementations deliver fn synchronously on the goroutine that changed the
// value and must tolerate Observe and Unobserve calls made from within fn.
type Observer interface {
	Observe(obj Object, path Path, fn func(value any)) (*Subscription, error)
	Unobserve(sub *Subscription)
}

// Subscription is a handle for one observation.
type Subscription struct {
	path   Path
	cancel func()
}

// NewSubscription wraps a cancel function into a Subscription. It is meant
// for Observer implementations.
func NewSubscription(path Path, cancel func()) *Subscription {
	return &Subscription{path: path, cancel: cancel}
}

// Path returns the observed key path.
func (s *Subscription) Path() Path {
	return s.path
}

// Cancel stops the observation. Subsequent calls do nothing.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}

	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Active reports whether the subscription has not been cancelled.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}

// DefaultObserver delegates observation to objects implementing Observable.
type DefaultObserver struct{}

var _ Observer = DefaultObserver{}

// Observe subscribes fn through obj.ObserveKeyPath. It fails with
// ErrNotObservable when obj does not implement Observable.
func (DefaultObserver) Observe(obj Object, path Path, fn func(value any)) (*Subscription, error) {
	o, ok := obj.(Observable)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotObservable, obj)
	}

	cancel, err := o.ObserveKeyPath(path, fn)
	if err != nil {
		return nil, err
	}

	return NewSubscription(path, cancel), nil
}

// Unobserve cancels sub.
func (DefaultObserver) Unobserve(sub *Subscription) {
	sub.Cancel()
}
