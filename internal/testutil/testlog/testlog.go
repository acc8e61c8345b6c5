package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"kvbind/internal/logging"
)

// Start configures test logging and records the test name.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("start")
}
