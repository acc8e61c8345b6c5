package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"kvbind/utils"
)

var (
	ErrNotConvertible = errors.New("value is not convertible")
	ErrOutOfRange     = errors.New("value is out of range")
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	validType    = reflect.TypeFor[interface{ IsValid() bool }]()
)

// Convert converts value to the type to, using only the conversion families
// enabled in allowed. A nil value converts to the zero value of to.
//
// Floats are rounded to the nearest integer when written into an integer
// type; values that do not fit the target fail with ErrOutOfRange.
func Convert(value any, to reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}

	src := reflect.ValueOf(value)
	if src.Type() == to {
		return src, nil
	}

	if src.Type().AssignableTo(to) {
		out := reflect.New(to).Elem()
		out.Set(src)

		return out, nil
	}

	from, dst := FromReflectType(src.Type()), FromReflectType(to)

	category := Categorize(from, dst)
	if !allowed.Has(category) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotConvertible, src.Type(), to)
	}

	out := reflect.New(to).Elem()

	var err error

	switch category {
	case CategorySafeNumber, CategoryUnsafeNumber:
		err = setNumber(out, src)
	case CategoryTextNumber:
		err = convertTextNumber(out, src)
	case CategoryNumericBool:
		if dst == KindBool {
			out.SetBool(!src.IsZero())
		} else {
			err = setNumber(out, reflect.ValueOf(boolToInt(src.Bool())))
		}
	case CategoryTextualBool:
		err = convertTextualBool(out, src)
	case CategoryDatetime:
		err = convertDatetime(out, src)
	case CategoryTimestamp:
		if dst == KindTime {
			out.Set(reflect.ValueOf(time.Unix(toInt64(src), 0).UTC()))
		} else {
			err = setNumber(out, reflect.ValueOf(src.Interface().(time.Time).Unix()))
		}
	case CategoryDuration:
		err = convertDuration(out, src)
	case CategoryNanoseconds:
		if dst == KindDuration {
			out.SetInt(toInt64(src))
		} else {
			err = setNumber(out, reflect.ValueOf(src.Int()))
		}
	case CategorySeconds:
		if dst == KindDuration {
			out.SetInt(int64(math.Round(src.Float() * float64(time.Second))))
		} else {
			out.SetFloat(time.Duration(src.Int()).Seconds())
		}
	case CategoryEnumString:
		err = convertEnum(out, src)
	}

	if err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

// setNumber stores the numeric src into the numeric out with range checks.
func setNumber(out, src reflect.Value) error {
	switch {
	case out.CanInt():
		var n int64

		switch {
		case src.CanInt():
			n = src.Int()
		case src.CanUint():
			if src.Uint() > math.MaxInt64 {
				return rangeError(src, out)
			}

			n = int64(src.Uint())
		default:
			f := math.Round(src.Float())
			if f >= 1<<63 || !utils.IsInRange(math.MinInt64, f, math.MaxInt64) {
				return rangeError(src, out)
			}

			n = int64(f)
		}

		if out.OverflowInt(n) {
			return rangeError(src, out)
		}

		out.SetInt(n)

	case out.CanUint():
		var n uint64

		switch {
		case src.CanInt():
			if src.Int() < 0 {
				return rangeError(src, out)
			}

			n = uint64(src.Int())
		case src.CanUint():
			n = src.Uint()
		default:
			f := math.Round(src.Float())
			if f >= 1<<64 || !utils.IsInRange(0, f, math.MaxUint64) {
				return rangeError(src, out)
			}

			n = uint64(f)
		}

		if out.OverflowUint(n) {
			return rangeError(src, out)
		}

		out.SetUint(n)

	case out.CanFloat():
		var f float64

		switch {
		case src.CanInt():
			f = float64(src.Int())
		case src.CanUint():
			f = float64(src.Uint())
		default:
			f = src.Float()
		}

		if out.OverflowFloat(f) {
			return rangeError(src, out)
		}

		out.SetFloat(f)

	default:
		return fmt.Errorf("%w: %s is not numeric", ErrNotConvertible, out.Type())
	}

	return nil
}

func convertTextNumber(out, src reflect.Value) error {
	if src.Kind() != reflect.String {
		switch {
		case src.CanInt():
			out.SetString(strconv.FormatInt(src.Int(), 10))
		case src.CanUint():
			out.SetString(strconv.FormatUint(src.Uint(), 10))
		default:
			out.SetString(strconv.FormatFloat(src.Float(), 'g', -1, src.Type().Bits()))
		}

		return nil
	}

	text := strings.TrimSpace(src.String())

	var (
		parsed any
		err    error
	)

	switch {
	case out.CanInt():
		parsed, err = strconv.ParseInt(text, 10, 64)
	case out.CanUint():
		parsed, err = strconv.ParseUint(text, 10, 64)
	default:
		parsed, err = strconv.ParseFloat(text, 64)
	}

	if err != nil {
		return fmt.Errorf("%w: %q as %s: %w", ErrNotConvertible, text, out.Type(), err)
	}

	return setNumber(out, reflect.ValueOf(parsed))
}

func convertTextualBool(out, src reflect.Value) error {
	if src.Kind() == reflect.Bool {
		out.SetString(strconv.FormatBool(src.Bool()))
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(src.String())) {
	case "yes", "on", "true", "1":
		out.SetBool(true)
	case "no", "off", "false", "0", "":
		out.SetBool(false)
	default:
		return fmt.Errorf("%w: %q is not a boolean", ErrNotConvertible, src.String())
	}

	return nil
}

func convertDatetime(out, src reflect.Value) error {
	if src.Kind() == reflect.String {
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(src.String()))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotConvertible, err)
		}

		out.Set(reflect.ValueOf(t))

		return nil
	}

	out.SetString(src.Interface().(time.Time).Format(time.RFC3339Nano))

	return nil
}

func convertDuration(out, src reflect.Value) error {
	if src.Kind() == reflect.String {
		d, err := time.ParseDuration(strings.TrimSpace(src.String()))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotConvertible, err)
		}

		out.SetInt(int64(d))

		return nil
	}

	out.SetString(time.Duration(src.Int()).String())

	return nil
}

// convertEnum moves values between strings and named types through their
// textual form. Targets implementing IsValid reject unknown values.
func convertEnum(out, src reflect.Value) error {
	text, ok := enumText(src)
	if !ok {
		return fmt.Errorf("%w: %s has no textual form", ErrNotConvertible, src.Type())
	}

	if out.Kind() != reflect.String {
		return fmt.Errorf("%w: %s is not a string enum", ErrNotConvertible, out.Type())
	}

	out.SetString(text)

	if out.Type().Implements(validType) && !out.Interface().(interface{ IsValid() bool }).IsValid() {
		return fmt.Errorf("%w: %q is not a valid %s", ErrOutOfRange, text, out.Type())
	}

	return nil
}

func enumText(v reflect.Value) (string, bool) {
	if v.Type().Implements(stringerType) {
		return v.Interface().(fmt.Stringer).String(), true
	}

	if v.Kind() == reflect.String {
		return v.String(), true
	}

	return "", false
}

func toInt64(v reflect.Value) int64 {
	if v.CanUint() {
		return int64(v.Uint())
	}

	return v.Int()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

func rangeError(src, out reflect.Value) error {
	return fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, src.Interface(), out.Type())
}
