// Package logger wraps zerolog behind the handful of calls the
// application actually makes.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func New(service, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.
		New(os.Stdout).
		With().
		Timestamp().
		Str("service", service).
		Logger().
		Level(lvl)
}
