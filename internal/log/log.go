// Package log provides the process-wide structured loggers: zerolog
// package-level functions for the exec plumbing and named zap loggers
// for the long-lived components.
package log

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	}

	logger = zerolog.New(output).With().Timestamp().Logger()

	// Stderr stays quiet by default so the report on stdout is readable.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(lvl)); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}
