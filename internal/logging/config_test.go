package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, true},
		{" warning ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		got, ok := parseLevel(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvLogLevel:     "error",
		EnvLogTimestamp: "false",
		EnvLogJSON:      "true",
		EnvLogNoColor:   "maybe",
	}

	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, zerolog.ErrorLevel, cfg.Level)
	assert.False(t, cfg.Timestamp)
	assert.True(t, cfg.JSON)
	assert.False(t, cfg.NoColor)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, DefaultConfig(ProfileTest).Level)
	assert.False(t, DefaultConfig(ProfileTest).Timestamp)
	assert.Equal(t, zerolog.InfoLevel, DefaultConfig(ProfileRuntime).Level)
	assert.True(t, DefaultConfig(ProfileRuntime).Timestamp)
}

func TestApply_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Apply(Config{Level: zerolog.WarnLevel, JSON: true, Out: &buf})
	logger.Info().Msg("hidden")
	logger.Warn().Str("binding", "b1").Msg("dropped")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"binding":"b1"`)
	assert.Contains(t, out, `"level":"warn"`)

	Apply(DefaultConfig(ProfileTest))
}
