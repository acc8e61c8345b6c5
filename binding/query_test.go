package binding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
	"kvbind/keypath"
)

func TestBindingsForKeyPath_AllRoles(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	view := keypath.NewModel(map[string]any{"title": "x"})
	model := keypath.NewModel(map[string]any{"name": "n"})
	label := keypath.NewModel(nil)
	ctrl := newController()

	setter, err := Bind(To(model), "name", To(view), "title", Options{})
	require.NoError(t, err)
	getter, err := Bind(To(view), "title", To(label), "text", Options{})
	require.NoError(t, err)
	trigger, err := BindAction(To(view), "title", To(ctrl), "submit", ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, []Binding{getter, setter, trigger}, BindingsForKeyPath(To(view), "title"))
	assert.Empty(t, BindingsForKeyPath(To(view), "other"))
	assert.Empty(t, BindingsForKeyPath(Ref{}, "title"))
	assert.NotNil(t, RegistryOf(To(view)))
	assert.Nil(t, RegistryOf(To(keypath.NewModel(nil))))
}

func TestUnbindByKeyPath(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	a := keypath.NewModel(map[string]any{"v": 1})
	b := keypath.NewModel(map[string]any{"v": 2})
	view := keypath.NewModel(nil)

	first, err := Bind(To(a), "v", To(view), "v", Options{})
	require.NoError(t, err)
	second, err := Bind(To(b), "v", To(view), "v", Options{})
	require.NoError(t, err)
	other, err := Bind(To(a), "v", To(view), "w", Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, Unbind(To(view), "v"))
	assert.False(t, first.IsActive())
	assert.False(t, second.IsActive())
	assert.True(t, other.IsActive())
	assert.Zero(t, Unbind(To(view), "v"))
}

func TestUnbindAll(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	view := keypath.NewModel(map[string]any{"v": 1, "tapped": false})
	peer := keypath.NewModel(nil)
	ctrl := newController()

	_, err := Bind(To(view), "v", To(peer), "v", Options{TwoWay: true})
	require.NoError(t, err)
	_, err = Bind(To(peer), "w", To(view), "w", Options{})
	require.NoError(t, err)
	_, err = BindAction(To(view), "tapped", To(ctrl), "submit", ActionOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, UnbindAll(To(view)))
	assert.Zero(t, RegistryOf(To(view)).Len())
	assert.Zero(t, RegistryOf(To(peer)).Len())
	assert.Nil(t, BindingForAction(To(ctrl), "submit"))
	assert.Zero(t, UnbindAll(To(view)))
	assert.Zero(t, UnbindAll(Ref{}))
}

func TestDebugDescription(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	view := keypath.NewModel(map[string]any{"age": 30})
	peer := keypath.NewModel(nil)
	ctrl := newController()

	assert.Equal(t, "*keypath.Model: no bindings\n", DebugDescription(To(view)))

	_, err := Bind(To(view), "age", To(peer), "age", Options{})
	require.NoError(t, err)
	_, err = BindAction(To(view), "tapped", To(ctrl), "submit", ActionOptions{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(DebugDescription(To(view))), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "*keypath.Model:", lines[0])
	assert.Equal(t, "  getter  age: *keypath.Model.age -> *keypath.Model.age = 30", lines[1])
	assert.Equal(t, "  trigger tapped: *keypath.Model.tapped => *binding.controller.submit", lines[2])
}
