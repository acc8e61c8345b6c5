package transform

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotInvertible      = errors.New("transformer does not allow reverse transformation")
	ErrUnknownTransformer = errors.New("unknown transformer")
	ErrUnexpectedType     = errors.New("unexpected value type")
)

// Transformer maps values copied across a binding.
type Transformer interface {
	Transform(value any) (any, error)
	ReverseTransform(value any) (any, error)
	AllowsReverseTransformation() bool
}

// Func is a single direction mapping.
type Func func(value any) (any, error)

type funcs struct {
	forward Func
	reverse Func
}

// New builds a Transformer from a forward and an optional reverse mapping.
// A nil reverse mapping makes the transformer forward only.
func New(forward, reverse Func) Transformer {
	if forward == nil {
		panic("transform: forward mapping cannot be nil")
	}

	return funcs{forward: forward, reverse: reverse}
}

func (f funcs) Transform(value any) (any, error) {
	return f.forward(value)
}

func (f funcs) ReverseTransform(value any) (any, error) {
	if f.reverse == nil {
		return nil, ErrNotInvertible
	}

	return f.reverse(value)
}

// AllowsReverseTransformation reports whether a reverse function was given.
func (f funcs) AllowsReverseTransformation() bool {
	return f.reverse != nil
}

// Identity passes values through unchanged in both directions.
var Identity = New(passThrough, passThrough)

// NegateBoolean maps a bool to its negation in both directions. A nil value
// negates to true.
var NegateBoolean = New(negate, negate)

// IsNil maps a value to whether it is nil.
var IsNil = New(func(v any) (any, error) { return isNil(v), nil }, nil)

// IsNotNil maps a value to whether it is not nil.
var IsNotNil = New(func(v any) (any, error) { return !isNil(v), nil }, nil)

func passThrough(v any) (any, error) {
	return v, nil
}

func negate(v any) (any, error) {
	if v == nil {
		return true, nil
	}

	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("%w: negate expects bool, got %T", ErrUnexpectedType, v)
	}

	return !b, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
