package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
)

func TestDiagnostics(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	var d Diagnostics

	assert.NoError(t, d.Error())
	assert.False(t, d.HasErrors())

	d.AddWarning("self_binding", "binds to itself", "b1", "target")
	d.AddError("unknown_transformer", `unknown transformer "percnt"`, "b2", "transformer").
		WithSuggestions("percent")
	d.AddInfo("note", "fine", "", "")

	require.True(t, d.HasErrors())
	assert.Equal(t, []string{"unknown_transformer", "self_binding", "note"}, d.Codes())
	assert.EqualError(t, d.Error(),
		`[b2] transformer: [unknown_transformer] unknown transformer "percnt" (did you mean percent?)`)
	assert.Equal(t, "fine", d.Infos[0].String()[len("[note] "):])

	var other Diagnostics
	other.AddError("bind_failed", "x", "", "")
	d.Merge(&other)
	d.Merge(nil)
	assert.Len(t, d.Errors, 2)
}

func TestSeverity_String(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(7).String())
}
