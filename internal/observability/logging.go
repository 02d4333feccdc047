package observability

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger creates a structured JSON logger tagged with a component name.
// Level comes from LOG_LEVEL; default is info.
func NewLogger(component string) zerolog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func parseLogLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
