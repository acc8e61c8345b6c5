package primitive

// CategoryEnum is a bit set of conversion families a caller allows.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with possible precision loss or overflow
	CategoryTextNumber                            // int, uint, float <-> string
	CategoryNumericBool                           // int <-> bool as 0 and 1
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time
	CategoryDuration                              // string(2h45m) <-> time.Duration
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration
	CategorySeconds                               // float(seconds) <-> time.Duration
	CategoryEnumString                            // string <-> named string or integer type

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected
)

// ConversionPair is an ordered (from, to) kind pair.
type ConversionPair struct {
	From, To KindEnum
}

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return other != CategoryNone && c&other == other
}

// Categorize returns the single category a conversion from one kind to
// another belongs to, or CategoryNone when the kinds are not convertible.
func Categorize(from, to KindEnum) CategoryEnum {
	switch pair := (ConversionPair{from, to}); {
	case from == 0 || to == 0:
		return CategoryNone
	case from.IsNumber() && to.IsNumber():
		if isSafeNumber(from, to) {
			return CategorySafeNumber
		}

		return CategoryUnsafeNumber
	case either(pair, KindEnum.IsNumber, KindString):
		return CategoryTextNumber
	case either(pair, KindEnum.IsInteger, KindBool):
		return CategoryNumericBool
	case either(pair, is(KindString), KindBool):
		return CategoryTextualBool
	case either(pair, is(KindString), KindTime):
		return CategoryDatetime
	case either(pair, KindEnum.IsInteger, KindTime):
		return CategoryTimestamp
	case either(pair, is(KindString), KindDuration):
		return CategoryDuration
	case either(pair, func(k KindEnum) bool { return k.IsInteger() && k != KindUint64 }, KindDuration):
		return CategoryNanoseconds
	case either(pair, KindEnum.IsFloat, KindDuration):
		return CategorySeconds
	case either(pair, is(KindString), KindPrimitiveEnum),
		from == KindPrimitiveEnum && to == KindPrimitiveEnum:
		return CategoryEnumString
	default:
		return CategoryNone
	}
}

// either matches a pair where one side satisfies pred and the other is kind.
func either(pair ConversionPair, pred func(KindEnum) bool, kind KindEnum) bool {
	return (pred(pair.From) && pair.To == kind) || (pair.From == kind && pred(pair.To))
}

func is(kind KindEnum) func(KindEnum) bool {
	return func(k KindEnum) bool { return k == kind }
}

// isSafeNumber reports whether every value of from is exactly representable
// in to. Platform sized int and uint count as 64 bits when read and 32 bits
// when written.
func isSafeNumber(from, to KindEnum) bool {
	if from == to {
		return true
	}

	switch {
	case from.IsFloat():
		return to == KindFloat64
	case to.IsFloat():
		mantissa := 24
		if to == KindFloat64 {
			mantissa = 53
		}

		return sourceBits(from) < mantissa
	case from.IsSigned() && to.IsUnsigned():
		return false
	case from.IsUnsigned() && to.IsSigned():
		return sourceBits(from) < targetBits(to)
	default:
		return sourceBits(from) <= targetBits(to)
	}
}

func sourceBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 64
	}

	return k.Bits()
}

func targetBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 32
	}

	return k.Bits()
}
