package binding

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"kvbind/internal/metrics"
	"kvbind/keypath"
	"kvbind/transform"
)

// ValueBinding keeps the value at a target key path equal to the
// (transformed) value at a source key path.
type ValueBinding struct {
	id          string
	source      endpoint
	target      endpoint
	sourcePath  keypath.Path
	targetPath  keypath.Path
	twoWay      bool
	retains     bool
	transformer transform.Transformer
	observer    keypath.Observer
	onError     ErrorHandler

	sourceSub *keypath.Subscription
	targetSub *keypath.Subscription

	active   atomic.Bool
	updating bool
}

var _ tracked = (*ValueBinding)(nil)

// Bind binds targetPath of target to sourcePath of source and copies the
// current source value to the target.
//
// Bind fails with ErrInvalidBinding when an object is nil or not a
// keypath.Object, a key path is malformed, the transformer cannot be
// resolved, or an object cannot be observed. A failing initial copy also
// fails Bind. Observation is set up before the initial copy, so a failed
// Bind leaves both objects untouched and nothing registered.
func Bind(source Ref, sourcePath string, target Ref, targetPath string, opts Options) (*ValueBinding, error) {
	sp, err := parsePath("source", sourcePath)
	if err != nil {
		return nil, err
	}

	tp, err := parsePath("target", targetPath)
	if err != nil {
		return nil, err
	}

	src, err := resolveObject("source", source)
	if err != nil {
		return nil, err
	}

	dst, err := resolveObject("target", target)
	if err != nil {
		return nil, err
	}

	if source.Is(target) && sp.String() == tp.String() {
		return nil, invalid("source and target are the same attribute %s", sp)
	}

	tr, err := opts.transformer()
	if err != nil {
		return nil, err
	}

	b := &ValueBinding{
		id:          newID(),
		source:      endpointOf(source),
		target:      endpointOf(target),
		sourcePath:  sp,
		targetPath:  tp,
		twoWay:      opts.TwoWay,
		retains:     opts.RetainsTarget,
		transformer: tr,
		observer:    observerOrDefault(opts.Observer),
		onError:     opts.OnError,
	}

	b.sourceSub, err = b.observer.Observe(src, sp, b.sourceChanged)
	if err != nil {
		return nil, invalid("observe source %s: %v", sp, err)
	}

	if b.twoWay {
		b.targetSub, err = b.observer.Observe(dst, tp, b.targetChanged)
		if err != nil {
			b.stopObserving()
			return nil, invalid("observe target %s: %v", tp, err)
		}
	}

	// Not active yet: the target echo of the initial copy is ignored.
	if err := b.transfer(src, sp, dst, tp, Forward); err != nil {
		b.stopObserving()
		return nil, fmt.Errorf("initial sync of %s: %w", b, err)
	}

	b.active.Store(true)

	if e := owners.ensure(source); e != nil {
		e.registry.Add(b, sp.String(), GroupGetter)
	}

	if e := owners.ensure(target); e != nil {
		e.registry.Add(b, tp.String(), GroupSetter)
	}

	if b.retains && !source.Is(target) {
		owners.retain(b.source.key, b, dst)
	}

	metrics.ActiveBindings.WithLabelValues(metrics.KindValue).Inc()

	log.Debug().
		Str("binding", b.id).
		Str("source", b.source.name+"."+sp.String()).
		Str("target", b.target.name+"."+tp.String()).
		Bool("two_way", b.twoWay).
		Msg("bound")

	return b, nil
}

// ID returns the unique identifier of the binding.
func (b *ValueBinding) ID() string {
	return b.id
}

// IsActive reports whether the binding still propagates: it has not been
// unbound and neither of its objects has been collected.
func (b *ValueBinding) IsActive() bool {
	return b.active.Load() && b.source.alive() && b.target.alive()
}

// IsTwoWay reports whether target changes are written back to the source.
func (b *ValueBinding) IsTwoWay() bool {
	return b.twoWay
}

// RetainsTarget reports whether the source keeps the target alive.
func (b *ValueBinding) RetainsTarget() bool {
	return b.retains
}

// SourceKeyPath returns the observed key path of the source.
func (b *ValueBinding) SourceKeyPath() keypath.Path {
	return b.sourcePath
}

// TargetKeyPath returns the written key path of the target.
func (b *ValueBinding) TargetKeyPath() keypath.Path {
	return b.targetPath
}

// Source returns the source object, or nil once it has been collected.
func (b *ValueBinding) Source() any {
	return b.source.value()
}

// Target returns the target object, or nil once it has been collected.
func (b *ValueBinding) Target() any {
	return b.target.value()
}

// ValueTransformer returns the transformer applied to values, or nil.
func (b *ValueBinding) ValueTransformer() transform.Transformer {
	return b.transformer
}

// String describes the binding as "source.path -> target.path".
func (b *ValueBinding) String() string {
	arrow := "->"
	if b.twoWay {
		arrow = "<->"
	}

	return fmt.Sprintf("%s.%s %s %s.%s", b.source.name, b.sourcePath, arrow, b.target.name, b.targetPath)
}

// Unbind stops observation and removes the binding from the registries of
// both objects. Calling it more than once has no effect.
func (b *ValueBinding) Unbind() {
	if !b.active.CompareAndSwap(true, false) {
		return
	}

	b.stopObserving()

	if r := owners.registry(b.source.key); r != nil {
		r.Remove(b, b.sourcePath.String(), GroupGetter)
	}

	if r := owners.registry(b.target.key); r != nil {
		r.Remove(b, b.targetPath.String(), GroupSetter)
	}

	owners.release(b.source.key, b)

	metrics.ActiveBindings.WithLabelValues(metrics.KindValue).Dec()

	log.Debug().Str("binding", b.id).Msg("unbound")
}

func (b *ValueBinding) stopObserving() {
	b.observer.Unobserve(b.sourceSub)

	if b.targetSub != nil {
		b.observer.Unobserve(b.targetSub)
	}
}

func (b *ValueBinding) sourceChanged(any) {
	b.propagate(Forward)
}

func (b *ValueBinding) targetChanged(any) {
	b.propagate(Reverse)
}

// propagate copies one value in dir. Changes arriving while the binding is
// writing are its own echo and are ignored.
func (b *ValueBinding) propagate(dir Direction) {
	if !b.active.Load() || b.updating {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			report(b, metrics.KindValue, dir, recovered(r), b.onError)
		}
	}()

	from, to := b.source, b.target
	fromPath, toPath := b.sourcePath, b.targetPath

	if dir == Reverse {
		from, to = to, from
		fromPath, toPath = toPath, fromPath
	}

	src, ok := from.object()
	if !ok {
		b.dangle()
		return
	}

	dst, ok := to.object()
	if !ok {
		b.dangle()
		return
	}

	if err := b.transfer(src, fromPath, dst, toPath, dir); err != nil {
		report(b, metrics.KindValue, dir, err, b.onError)
	}
}

func (b *ValueBinding) transfer(src keypath.Object, fromPath keypath.Path, dst keypath.Object, toPath keypath.Path, dir Direction) error {
	value, err := src.ValueForKeyPath(fromPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", fromPath, err)
	}

	value, err = b.mapValue(value, dir)
	if err != nil {
		return err
	}

	b.updating = true
	defer func() { b.updating = false }()

	if err := dst.SetValueForKeyPath(toPath, value); err != nil {
		return fmt.Errorf("write %s: %w", toPath, err)
	}

	metrics.Propagations.WithLabelValues(metrics.KindValue, dir.String()).Inc()

	return nil
}

func (b *ValueBinding) mapValue(value any, dir Direction) (any, error) {
	if b.transformer == nil {
		return value, nil
	}

	if dir == Forward {
		return b.transformer.Transform(value)
	}

	if !b.transformer.AllowsReverseTransformation() {
		return nil, ErrNonInvertibleTransform
	}

	out, err := b.transformer.ReverseTransform(value)
	if errors.Is(err, transform.ErrNotInvertible) {
		return nil, fmt.Errorf("%w: %w", ErrNonInvertibleTransform, err)
	}

	return out, err
}

func (b *ValueBinding) dead() bool {
	return b.active.Load() && !(b.source.alive() && b.target.alive())
}

func (b *ValueBinding) orphaned() bool {
	return b.active.Load() && !b.source.alive() && !b.target.alive()
}

// dangle deactivates a binding whose endpoint has been collected.
func (b *ValueBinding) dangle() {
	if !b.active.Load() {
		return
	}

	dropDangling(b)
	b.Unbind()
}

func (b *ValueBinding) retire() {
	if !b.active.CompareAndSwap(true, false) {
		return
	}

	metrics.ActiveBindings.WithLabelValues(metrics.KindValue).Dec()
	log.Debug().Str("binding", b.id).Msg("retired")
}
