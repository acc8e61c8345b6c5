package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
	"kvbind/primitive"
)

type address struct {
	City string `kvc:"city"`
}

type slider struct {
	Value   float64 `kvc:"value"`
	Label   string
	Home    *address `kvc:"home"`
	Hidden  bool     `kvc:"-"`
	private int
}

func TestNewStruct_Validation(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	_, err := NewStruct(slider{})
	require.ErrorIs(t, err, ErrNotStructPointer)

	_, err = NewStruct((*slider)(nil))
	require.ErrorIs(t, err, ErrNotStructPointer)

	n := 3
	_, err = NewStruct(&n)
	require.ErrorIs(t, err, ErrNotStructPointer)
}

func TestStruct_Keys(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	s, err := NewStruct(&slider{})
	require.NoError(t, err)
	assert.Equal(t, []string{"value", "Label", "home"}, s.Keys())
}

func TestStruct_SetConverts(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	target := &slider{Home: &address{City: "Oslo"}}
	s, err := NewStruct(target)
	require.NoError(t, err)

	require.NoError(t, s.Set("value", 1))
	assert.InDelta(t, 1.0, target.Value, 1e-9)

	require.NoError(t, s.Set("value", "0.5"))
	assert.InDelta(t, 0.5, target.Value, 1e-9)

	require.NoError(t, s.Set("home.city", "Bergen"))
	assert.Equal(t, "Bergen", target.Home.City)

	city, err := s.Value("home.city")
	require.NoError(t, err)
	assert.Equal(t, "Bergen", city)

	err = s.Set("value", "lots")
	require.ErrorIs(t, err, primitive.ErrNotConvertible)

	err = s.Set("Hidden", true)
	require.ErrorIs(t, err, ErrUnknownKey)

	err = s.Set("home.street", "Main")
	require.ErrorIs(t, err, ErrUnknownKey)

	err = s.Set("Label.size", 3)
	require.ErrorIs(t, err, ErrNotTraversable)
}

func TestStruct_NarrowedCategories(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	s, err := NewStruct(&slider{}, WithCategories(primitive.CategorySafeNumber))
	require.NoError(t, err)

	require.NoError(t, s.Set("value", int16(2)))
	require.ErrorIs(t, s.Set("value", "2"), primitive.ErrNotConvertible)
}

func TestStruct_Observe(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	target := &slider{Home: &address{}}
	s, err := NewStruct(target)
	require.NoError(t, err)

	var values []any

	_, err = s.ObserveKeyPath(MustParse("value"), func(v any) { values = append(values, v) })
	require.NoError(t, err)

	var cities []any

	_, err = s.ObserveKeyPath(MustParse("home.city"), func(v any) { cities = append(cities, v) })
	require.NoError(t, err)

	require.NoError(t, s.Set("value", 0.4))
	require.NoError(t, s.Set("home.city", "Oslo"))

	assert.Equal(t, []any{0.4}, values)
	assert.Equal(t, []any{"Oslo"}, cities)

	_, err = s.ObserveKeyPath(MustParse("missing"), func(any) {})
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestStruct_DelegatesToNestedObject(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	type holder struct {
		Inner *Model `kvc:"inner"`
	}

	inner := NewModel(nil)
	s, err := NewStruct(&holder{Inner: inner})
	require.NoError(t, err)

	require.NoError(t, s.Set("inner.score", 7))
	assert.Equal(t, 7, inner.Get("score"))

	v, err := s.Value("inner.score")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
