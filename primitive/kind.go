package primitive

import (
	"math"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies the value types that can be converted between each
// other when a bound value is assigned to a typed field.
type KindEnum int

const (
	_ KindEnum = iota // zero value is the invalid (unknown) kind

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named integer or string type

	// KindTotal is the number of kinds including the invalid zero value.
	KindTotal = int(iota)
)

// IsNumber reports whether k is an integer or a float kind.
func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

// IsInteger reports whether k is a signed or an unsigned integer kind.
func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

// IsFloat reports whether k is float32 or float64.
func (k KindEnum) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsSigned reports whether k is a signed integer kind.
func (k KindEnum) IsSigned() bool {
	return k >= KindInt && k <= KindInt64
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k KindEnum) IsUnsigned() bool {
	return k >= KindUint && k <= KindUint64
}

// Bits returns the storage width of a numeric kind on the current platform.
func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		return bitsOfUint()
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

func bitsOfUint() int {
	power := 0
	for n := uint(math.MaxUint); n > 0; n >>= 1 {
		power++
	}

	return power
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

var builtinKinds = map[reflect.Type]KindEnum{
	reflect.TypeFor[int]():     KindInt,
	reflect.TypeFor[int8]():    KindInt8,
	reflect.TypeFor[int16]():   KindInt16,
	reflect.TypeFor[int32]():   KindInt32,
	reflect.TypeFor[int64]():   KindInt64,
	reflect.TypeFor[uint]():    KindUint,
	reflect.TypeFor[uint8]():   KindUint8,
	reflect.TypeFor[uint16]():  KindUint16,
	reflect.TypeFor[uint32]():  KindUint32,
	reflect.TypeFor[uint64]():  KindUint64,
	reflect.TypeFor[float32](): KindFloat32,
	reflect.TypeFor[float64](): KindFloat64,
	reflect.TypeFor[bool]():    KindBool,
	reflect.TypeFor[string]():  KindString,
	timeType:                   KindTime,
	durationType:               KindDuration,
}

// FromReflectType returns the kind of rtype, or the zero KindEnum when the
// type takes no part in primitive conversions.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if kind, ok := builtinKinds[rtype]; ok {
		return kind
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
		return KindPrimitiveEnum
	}
}
