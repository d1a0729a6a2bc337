// Package logging configures zerolog for the pit. Game text goes to
// stdout through the console; logs always go to a separate writer.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel keeps play sessions quiet
const DefaultLevel = "warn"

// Setup configures the global logger. An unknown level falls back to
// DefaultLevel. A nil writer means stderr.
func Setup(level string, pretty bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl, _ = zerolog.ParseLevel(DefaultLevel)
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// For returns a sub-logger tagged with module. Call it after Setup,
// typically from a constructor.
func For(module string) zerolog.Logger {
	return log.With().Str("module", module).Logger()
}
