package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so packages outside infra can accept a logger
// without importing zerolog themselves.
type Logger = zerolog.Logger

// NewLogger builds the service logger. Development gets a console writer at
// debug level; everything else gets JSON lines at info level.
func NewLogger(appEnv string) Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "donation-relay").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// NopLogger returns a logger that discards everything. Used when a component
// is constructed without one.
func NopLogger() Logger {
	return zerolog.New(io.Discard)
}
