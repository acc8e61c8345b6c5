package binding

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"kvbind/internal/metrics"
	"kvbind/keypath"
)

// ActionTarget is implemented by objects that can receive actions.
type ActionTarget interface {
	InvokeAction(action string, sender Binding) error
}

// ActionResponder is an optional ActionTarget extension. Targets
// implementing it are asked at bind time whether they support the action.
type ActionResponder interface {
	RespondsToAction(action string) bool
}

// Actions is an ActionTarget backed by a map of handlers. Embed it to make
// a type an action target.
type Actions map[string]func(sender Binding) error

var (
	_ ActionTarget    = Actions(nil)
	_ ActionResponder = Actions(nil)
)

// InvokeAction calls the handler registered for action.
func (a Actions) InvokeAction(action string, sender Binding) error {
	fn, ok := a[action]
	if !ok || fn == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}

	return fn(sender)
}

// RespondsToAction reports whether a handler is registered for action.
func (a Actions) RespondsToAction(action string) bool {
	return a[action] != nil
}

// Names returns the supported actions, sorted.
func (a Actions) Names() []string {
	return slices.Sorted(maps.Keys(a))
}

// ActionBinding invokes an action on a target whenever a trigger attribute
// of its source changes.
type ActionBinding struct {
	id         string
	source     endpoint
	sourcePath keypath.Path
	target     endpoint
	action     string
	observer   keypath.Observer
	onError    ErrorHandler

	sub *keypath.Subscription

	active atomic.Bool
	firing bool
}

var _ tracked = (*ActionBinding)(nil)

// BindAction makes changes of sourcePath on source invoke action on target.
// target must implement ActionTarget.
func BindAction(source Ref, sourcePath string, target Ref, action string, opts ActionOptions) (*ActionBinding, error) {
	sp, err := parsePath("trigger", sourcePath)
	if err != nil {
		return nil, err
	}

	if action == "" {
		return nil, invalid("action is empty")
	}

	src, err := resolveObject("source", source)
	if err != nil {
		return nil, err
	}

	v, err := resolve("target", target)
	if err != nil {
		return nil, err
	}

	at, ok := v.(ActionTarget)
	if !ok {
		return nil, invalid("target %T does not implement ActionTarget", v)
	}

	if r, ok := at.(ActionResponder); ok && !r.RespondsToAction(action) {
		return nil, fmt.Errorf("%w: %w: %q on %T", ErrInvalidBinding, ErrUnsupportedAction, action, v)
	}

	b := &ActionBinding{
		id:         newID(),
		source:     endpointOf(source),
		sourcePath: sp,
		target:     endpointOf(target),
		action:     action,
		observer:   observerOrDefault(opts.Observer),
		onError:    opts.OnError,
	}

	b.sub, err = b.observer.Observe(src, sp, b.trigger)
	if err != nil {
		return nil, invalid("observe trigger %s: %v", sp, err)
	}

	b.active.Store(true)

	if e := owners.ensure(source); e != nil {
		e.registry.Add(b, sp.String(), GroupTrigger)
	}

	if e := owners.ensure(target); e != nil {
		e.registry.Add(b, action, GroupAction)
	}

	metrics.ActiveBindings.WithLabelValues(metrics.KindAction).Inc()

	log.Debug().
		Str("binding", b.id).
		Str("trigger", b.source.name+"."+sp.String()).
		Str("action", b.target.name+"."+action).
		Msg("bound action")

	return b, nil
}

// ID returns the unique identifier of the binding.
func (b *ActionBinding) ID() string {
	return b.id
}

// IsActive reports whether the binding has not been unbound and both the
// trigger object and the target still exist.
func (b *ActionBinding) IsActive() bool {
	return b.active.Load() && b.source.alive() && b.target.alive()
}

// SourceKeyPath returns the trigger key path.
func (b *ActionBinding) SourceKeyPath() keypath.Path {
	return b.sourcePath
}

// Action returns the name of the invoked action.
func (b *ActionBinding) Action() string {
	return b.action
}

// Source returns the trigger object, or nil once it has been collected.
func (b *ActionBinding) Source() any {
	return b.source.value()
}

// Target returns the action target, or nil once it has been collected.
func (b *ActionBinding) Target() any {
	return b.target.value()
}

// String describes the binding as "source.path => target.action".
func (b *ActionBinding) String() string {
	return fmt.Sprintf("%s.%s => %s.%s", b.source.name, b.sourcePath, b.target.name, b.action)
}

// Unbind stops observing the trigger and removes the binding from both
// registries. Calling it more than once has no effect.
func (b *ActionBinding) Unbind() {
	if !b.active.CompareAndSwap(true, false) {
		return
	}

	b.observer.Unobserve(b.sub)

	if r := owners.registry(b.source.key); r != nil {
		r.Remove(b, b.sourcePath.String(), GroupTrigger)
	}

	if r := owners.registry(b.target.key); r != nil {
		r.Remove(b, b.action, GroupAction)
	}

	metrics.ActiveBindings.WithLabelValues(metrics.KindAction).Dec()

	log.Debug().Str("binding", b.id).Msg("unbound action")
}

// trigger invokes the action. A trigger change made by the action itself
// does not invoke it again.
func (b *ActionBinding) trigger(any) {
	if !b.active.Load() || b.firing {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			report(b, metrics.KindAction, Forward, recovered(r), b.onError)
		}
	}()

	v := b.target.value()
	if v == nil {
		b.dangle()
		return
	}

	at, ok := v.(ActionTarget)
	if !ok {
		report(b, metrics.KindAction, Forward, fmt.Errorf("%w: %T", ErrUnsupportedAction, v), b.onError)
		return
	}

	b.firing = true
	defer func() { b.firing = false }()

	if err := at.InvokeAction(b.action, b); err != nil {
		report(b, metrics.KindAction, Forward, fmt.Errorf("invoke %s: %w", b.action, err), b.onError)
		return
	}

	metrics.Propagations.WithLabelValues(metrics.KindAction, Forward.String()).Inc()
}

func (b *ActionBinding) dead() bool {
	return b.active.Load() && !(b.source.alive() && b.target.alive())
}

func (b *ActionBinding) orphaned() bool {
	return b.active.Load() && !b.source.alive() && !b.target.alive()
}

// dangle deactivates a binding whose trigger object or target has been
// collected.
func (b *ActionBinding) dangle() {
	if !b.active.Load() {
		return
	}

	dropDangling(b)
	b.Unbind()
}

func (b *ActionBinding) retire() {
	if !b.active.CompareAndSwap(true, false) {
		return
	}

	metrics.ActiveBindings.WithLabelValues(metrics.KindAction).Dec()
	log.Debug().Str("binding", b.id).Msg("retired action")
}
