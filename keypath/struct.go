package keypath

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"kvbind/primitive"
)

// ErrNotStructPointer is returned by NewStruct for anything but a struct pointer.
var ErrNotStructPointer = errors.New("expected a non-nil pointer to a struct")

// Struct adapts a pointer to a plain struct into an observable Object.
//
// Keys are taken from the `kvc` struct tag, falling back to the field name;
// `kvc:"-"` hides a field. Only exported fields are visible. Assigned values
// are converted to the field type with primitive.Convert.
//
// Changes are only observed when they are written through the Struct.
type Struct struct {
	ptr     reflect.Value
	fields  map[string]int
	allowed primitive.CategoryEnum
	notifier
}

var (
	_ Object     = (*Struct)(nil)
	_ Observable = (*Struct)(nil)
)

// StructOption configures a Struct.
type StructOption func(*Struct)

// WithCategories narrows the conversions applied on assignment.
func WithCategories(allowed primitive.CategoryEnum) StructOption {
	return func(s *Struct) {
		s.allowed = allowed
	}
}

// NewStruct wraps ptr, which must be a non-nil pointer to a struct.
func NewStruct(ptr any, opts ...StructOption) (*Struct, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %T", ErrNotStructPointer, ptr)
	}

	s := &Struct{
		ptr:     v,
		fields:  make(map[string]int),
		allowed: primitive.CategoryAll,
	}

	t := v.Elem().Type()
	for i := range t.NumField() {
		if key, ok := fieldKey(t.Field(i)); ok {
			s.fields[key] = i
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Target returns the wrapped struct pointer.
func (s *Struct) Target() any {
	return s.ptr.Interface()
}

// Keys returns the visible keys in field order.
func (s *Struct) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for key := range s.fields {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b string) int { return s.fields[a] - s.fields[b] })

	return keys
}

// Value resolves a dotted key path.
func (s *Struct) Value(keyPath string) (any, error) {
	p, err := Parse(keyPath)
	if err != nil {
		return nil, err
	}

	return s.ValueForKeyPath(p)
}

// Set assigns a dotted key path and notifies observers of its first key.
func (s *Struct) Set(keyPath string, value any) error {
	p, err := Parse(keyPath)
	if err != nil {
		return err
	}

	return s.SetValueForKeyPath(p, value)
}

// ValueForKeyPath reads the field addressed by path.
func (s *Struct) ValueForKeyPath(path Path) (any, error) {
	field, err := s.field(path)
	if err != nil {
		return nil, err
	}

	if path.Len() == 1 {
		return field.Interface(), nil
	}

	return valueAt(field.Interface(), path.Rest())
}

// SetValueForKeyPath converts value to the field type, writes it and
// notifies observers of the field.
func (s *Struct) SetValueForKeyPath(path Path, value any) error {
	field, err := s.field(path)
	if err != nil {
		return err
	}

	target := field

	for i, seg := range path.segments[1:] {
		if obj, ok := asObject(target); ok {
			return obj.SetValueForKeyPath(path.from(i+1), value)
		}

		target = reflect.Indirect(target)
		if target.Kind() != reflect.Struct {
			return &PathError{Path: path, Segment: seg, Err: ErrNotTraversable}
		}

		next, ok := fieldByKey(target, seg)
		if !ok {
			return &PathError{Path: path, Segment: seg, Err: ErrUnknownKey}
		}

		target = next
	}

	converted, err := primitive.Convert(value, target.Type(), s.allowed)
	if err != nil {
		return &PathError{Path: path, Segment: path.segments[path.Len()-1], Err: err}
	}

	target.Set(converted)
	s.notify(path.Head(), field.Interface())

	return nil
}

// ObserveKeyPath subscribes fn to changes of the field addressed by path.
func (s *Struct) ObserveKeyPath(path Path, fn func(value any)) (func(), error) {
	field, err := s.field(path)
	if err != nil {
		return nil, err
	}

	return s.observe(path, field.Interface(), fn)
}

func (s *Struct) field(path Path) (reflect.Value, error) {
	if path.IsEmpty() {
		return reflect.Value{}, ErrEmptyPath
	}

	i, ok := s.fields[path.Head()]
	if !ok {
		return reflect.Value{}, &PathError{Path: path, Segment: path.Head(), Err: ErrUnknownKey}
	}

	return s.ptr.Elem().Field(i), nil
}

func fieldKey(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}

	switch tag := f.Tag.Get("kvc"); tag {
	case "-":
		return "", false
	case "":
		return f.Name, true
	default:
		return tag, true
	}
}

func fieldByKey(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := range t.NumField() {
		if k, ok := fieldKey(t.Field(i)); ok && k == key {
			return v.Field(i), true
		}
	}

	return reflect.Value{}, false
}

func asObject(v reflect.Value) (Object, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
	}

	if !v.CanInterface() {
		return nil, false
	}

	obj, ok := v.Interface().(Object)

	return obj, ok
}
