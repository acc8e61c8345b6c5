package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvbind/internal/testutil/testlog"
)

const validDoc = `
bindings:
  - name: age-slider
    source: person
    source_path: age
    target: slider
    target_path: value
    transformer: percent
`

const transformers = `
transformers:
  - name: percent
    kind: linear
    scale: 0.01
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	code, _, stderr := runCmd()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: bindcheck")

	code, _, _ = runCmd("--bogus", "x.yaml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd("--help")
	assert.Equal(t, exitOK, code)
}

func TestRun_ValidWithTransformers(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	doc := writeFile(t, "form.yaml", validDoc)
	defs := writeFile(t, "transformers.yaml", transformers)

	code, stdout, stderr := runCmd("--transformers", defs, doc)
	assert.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "ok (1 bindings, 0 actions)")
}

func TestRun_UnknownTransformer(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	doc := writeFile(t, "form.yaml", validDoc)

	code, stdout, _ := runCmd(doc)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stdout, `error: [age-slider] transformer: [unknown_transformer] unknown transformer "percent"`)
}

func TestRun_QuietHidesWarnings(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	doc := writeFile(t, "self.toml", `
[[bindings]]
source = "a"
source_path = "x"
target = "a"
target_path = "x"
`)

	code, stdout, _ := runCmd(doc)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "warning:")

	code, stdout, _ = runCmd("-q", doc)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
}

func TestRun_Dump(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	doc := writeFile(t, "form.yaml", validDoc)
	defs := writeFile(t, "transformers.yaml", transformers)

	code, stdout, _ := runCmd("-t", defs, "--dump", doc)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "version: \"1\"")
	assert.Contains(t, stdout, "source_path: age")
	assert.Contains(t, stdout, "(*declare.Document)")
}

func TestRun_BadFiles(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	code, _, stderr := runCmd("missing.yaml", "doc.ini")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "failed to read binding document")
	assert.Contains(t, stderr, "unknown document format")

	broken := writeFile(t, "broken.yaml", "transformers:\n  - name: x\n    kind: cubic\n")
	code, _, stderr = runCmd("-t", broken, writeFile(t, "ok.yaml", "bindings: []\n"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "unknown kind")
}
