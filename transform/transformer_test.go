package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
)

func TestNew_ForwardOnly(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	tr := New(func(v any) (any, error) { return v, nil }, nil)
	assert.False(t, tr.AllowsReverseTransformation())

	_, err := tr.ReverseTransform(1)
	require.ErrorIs(t, err, ErrNotInvertible)

	assert.Panics(t, func() { New(nil, nil) })
}

func TestBuiltins(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	v, err := Identity.ReverseTransform("x")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = NegateBoolean.Transform(true)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = NegateBoolean.ReverseTransform(nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = NegateBoolean.Transform("yes")
	require.ErrorIs(t, err, ErrUnexpectedType)

	var nilMap map[string]int

	v, err = IsNil.Transform(nilMap)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = IsNotNil.Transform(0)
	require.NoError(t, err)
	assert.Equal(t, true, v)
	assert.False(t, IsNotNil.AllowsReverseTransformation())
}

func TestLinear(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	ageToRatio := Linear(0.01, 0)

	v, err := ageToRatio.Transform(40)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, v, 1e-12)

	v, err = ageToRatio.ReverseTransform(0.6)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, v, 1e-12)

	_, err = ageToRatio.Transform("forty")
	require.ErrorIs(t, err, ErrUnexpectedType)

	_, err = ageToRatio.Transform(nil)
	require.ErrorIs(t, err, ErrUnexpectedType)

	flat := Linear(0, 5)
	assert.False(t, flat.AllowsReverseTransformation())

	clamped := LinearClamped(2, 0, 0, 10)
	v, err = clamped.Transform(uint8(9))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, 1e-12)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	moods := Lookup(map[any]any{"happy": "yellow", "sad": "blue"})
	require.True(t, moods.AllowsReverseTransformation())

	v, err := moods.Transform("sad")
	require.NoError(t, err)
	assert.Equal(t, "blue", v)

	v, err = moods.ReverseTransform("yellow")
	require.NoError(t, err)
	assert.Equal(t, "happy", v)

	v, err = moods.Transform("bored")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = moods.Transform([]string{"sad"})
	require.ErrorIs(t, err, ErrUnexpectedType)

	lossy := Lookup(map[any]any{"a": 1, "b": 1})
	assert.False(t, lossy.AllowsReverseTransformation())
}
