package keypath_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
	"kvbind/keypath"
)

type plain struct{}

func (plain) ValueForKeyPath(keypath.Path) (any, error)  { return nil, nil }
func (plain) SetValueForKeyPath(keypath.Path, any) error { return nil }

func TestDefaultObserver(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	var observer keypath.DefaultObserver

	m := keypath.NewModel(nil)

	var got []any

	sub, err := observer.Observe(m, keypath.MustParse("x"), func(v any) { got = append(got, v) })
	require.NoError(t, err)
	assert.True(t, sub.Active())
	assert.Equal(t, "x", sub.Path().String())

	require.NoError(t, m.Set("x", 1))

	observer.Unobserve(sub)
	observer.Unobserve(sub)
	assert.False(t, sub.Active())

	require.NoError(t, m.Set("x", 2))
	assert.Equal(t, []any{1}, got)

	_, err = observer.Observe(plain{}, keypath.MustParse("x"), func(any) {})
	require.ErrorIs(t, err, keypath.ErrNotObservable)

	_, err = observer.Observe(m, keypath.Path{}, func(any) {})
	require.ErrorIs(t, err, keypath.ErrEmptyPath)
}

func ExampleModel() {
	m := keypath.NewModel(map[string]any{"age": 30})

	cancel, _ := m.ObserveKeyPath(keypath.MustParse("age"), func(v any) {
		fmt.Println("age changed to", v)
	})
	defer cancel()

	_ = m.Set("age", 40)
	// Output:
	// age changed to 40
}
