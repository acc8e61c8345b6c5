package utils

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](min T, value T, max T) bool {
	return min <= value && value <= max
}

// Clamp limits value to [min, max]. Bounds are swapped when given reversed.
func Clamp[T number](min T, value T, max T) T {
	if min > max {
		min, max = max, min
	}

	switch {
	case value < min:
		return min
	case value > max:
		return max
	default:
		return value
	}
}
