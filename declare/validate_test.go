package declare

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/diagnostic"
	"kvbind/internal/testutil/testlog"
)

func TestValidate_Valid(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	doc, err := LoadFile(filepath.Join("testdata", "form.yaml"))
	require.NoError(t, err)

	res := Validate(doc, nil)
	assert.False(t, res.HasErrors(), res.Error())
	assert.Empty(t, res.Warnings)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	doc, err := LoadFile(filepath.Join("testdata", "broken.yaml"))
	require.NoError(t, err)

	res := Validate(doc, nil)

	assert.ElementsMatch(t, []string{
		"duplicate_transformer",
		"invalid_transformer",
		"empty_source",
		"invalid_target_path",
		"unknown_transformer",
		"duplicate_name",
		"invalid_key_path",
		"empty_action",
	}, codes(res.Errors))
	assert.Equal(t, []string{"self_binding"}, codes(res.Warnings))

	unknown := find(res.Errors, "unknown_transformer")
	require.NotNil(t, unknown)
	assert.Equal(t, "one", unknown.Subject)
	assert.Equal(t, []string{"percent"}, unknown.Suggestions)

	assert.Equal(t, "actions[0]", find(res.Errors, "empty_action").Subject)
}

func TestValidate_VersionAndNil(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	res := Validate(&Document{Version: "2"}, nil)
	assert.Equal(t, []string{"unsupported_version"}, codes(res.Errors))

	res = Validate(nil, nil)
	assert.Equal(t, []string{"document_is_nil"}, codes(res.Errors))
}

func codes(list []diagnostic.Diagnostic) []string {
	var out []string
	for _, d := range list {
		out = append(out, d.Code)
	}

	return out
}

func find(list []diagnostic.Diagnostic, code string) *diagnostic.Diagnostic {
	for i := range list {
		if list[i].Code == code {
			return &list[i]
		}
	}

	return nil
}
