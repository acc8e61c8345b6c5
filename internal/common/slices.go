package common

import "slices"

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// AppendUnique appends the elements of src missing from dst, keeping order.
func AppendUnique[S ~[]E, E comparable](dst S, src ...E) S {
	for _, v := range src {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}

	return dst
}
