package transform

import (
	"fmt"
	"maps"
	"math"
	"reflect"

	"kvbind/utils"
)

// Linear maps x to x*scale+offset. Any numeric input is accepted and the
// result is a float64. The reverse mapping exists when scale is not zero.
func Linear(scale, offset float64) Transformer {
	return LinearClamped(scale, offset, math.Inf(-1), math.Inf(1))
}

// LinearClamped is Linear with the forward result limited to [lo, hi].
func LinearClamped(scale, offset, lo, hi float64) Transformer {
	forward := func(v any) (any, error) {
		x, err := toFloat(v)
		if err != nil {
			return nil, err
		}

		return utils.Clamp(lo, x*scale+offset, hi), nil
	}

	if scale == 0 {
		return New(forward, nil)
	}

	reverse := func(v any) (any, error) {
		y, err := toFloat(v)
		if err != nil {
			return nil, err
		}

		return (y - offset) / scale, nil
	}

	return New(forward, reverse)
}

// Lookup maps values through a table. Unknown inputs map to nil. The reverse
// mapping exists when the table values are unique and comparable.
func Lookup(table map[any]any) Transformer {
	forwardTable := maps.Clone(table)
	forward := func(v any) (any, error) {
		if !isComparable(v) {
			return nil, fmt.Errorf("%w: lookup key %T is not comparable", ErrUnexpectedType, v)
		}

		return forwardTable[v], nil
	}

	reverseTable := make(map[any]any, len(table))
	for k, v := range table {
		if !isComparable(v) {
			return New(forward, nil)
		}

		if _, dup := reverseTable[v]; dup {
			return New(forward, nil)
		}

		reverseTable[v] = k
	}

	reverse := func(v any) (any, error) {
		if !isComparable(v) {
			return nil, fmt.Errorf("%w: lookup value %T is not comparable", ErrUnexpectedType, v)
		}

		return reverseTable[v], nil
	}

	return New(forward, reverse)
}

func isComparable(v any) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

func toFloat(v any) (float64, error) {
	rv := reflect.ValueOf(v)

	switch {
	case v == nil:
		return 0, fmt.Errorf("%w: expected number, got nil", ErrUnexpectedType)
	case rv.CanInt():
		return float64(rv.Int()), nil
	case rv.CanUint():
		return float64(rv.Uint()), nil
	case rv.CanFloat():
		return rv.Float(), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrUnexpectedType, v)
	}
}
