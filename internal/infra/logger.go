package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so packages outside infra can accept a logger
// without importing the third-party module directly.
type Logger = zerolog.Logger

// NewLogger builds the service logger. Development gets a colored console
// writer at debug level; every other environment logs JSON at info level.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(os.Stdout, appEnv)
}

// NopLogger discards everything; handy for tests and optional collaborators.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newLogger(out io.Writer, appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "imagestudio").
		Logger()
}
