package transform

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	for _, name := range []string{"Identity", "NegateBoolean", "IsNil", "IsNotNil"} {
		assert.True(t, Default.Has(name), name)
	}
}

func TestRegistry_RegisterLookup(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	r := NewRegistry()
	require.NoError(t, r.Register("ratio", Linear(0.01, 0)))
	require.Error(t, r.Register("", Identity))
	require.Error(t, r.Register("nil", nil))

	tr, err := r.Lookup("ratio")
	require.NoError(t, err)
	assert.NotNil(t, tr)

	_, err = r.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownTransformer)
	assert.Contains(t, err.Error(), "missing")

	assert.Nil(t, r.Get("missing"))

	r.Unregister("ratio")
	r.Unregister("ratio")
	assert.False(t, r.Has("ratio"))
}

func TestRegistry_NamesSorted(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	r := NewRegistry()
	require.NoError(t, r.Register("beta", Identity))
	require.NoError(t, r.Register("alpha", Identity))

	assert.Equal(t, []string{"alpha", "beta"}, r.Names())
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	clone := Default.Clone()
	require.NoError(t, clone.Register("local", Identity))

	assert.True(t, clone.Has("Identity"))
	assert.False(t, Default.Has("local"))
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	r := NewRegistry()

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			name := string(rune('a' + i))
			assert.NoError(t, r.Register(name, Identity))
			assert.True(t, r.Has(name))
		}()
	}

	wg.Wait()
	assert.Len(t, r.Names(), 8)
}

func TestChain(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	local := NewRegistry()
	require.NoError(t, local.Register("Identity", NegateBoolean))
	require.NoError(t, local.Register("percent", Linear(0.01, 0)))

	c := Chain(local, nil, Default)

	tr, err := c.Lookup("Identity")
	require.NoError(t, err)
	out, err := tr.Transform(true)
	require.NoError(t, err)
	assert.Equal(t, false, out)

	_, err = c.Lookup("IsNil")
	require.NoError(t, err)

	_, err = c.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownTransformer)

	names := c.(interface{ Names() []string }).Names()
	assert.Equal(t, []string{"Identity", "IsNil", "IsNotNil", "NegateBoolean", "percent"}, names)
}
