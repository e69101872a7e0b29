// Package logger provides structured logging via zerolog.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var globalLogger zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	globalLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
}

// Init sets the global log level. Level accepts zerolog level names
// ("debug", "info", "warn", "error"); an empty string keeps the default.
func Init(level string) error {
	if level == "" {
		return nil
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	globalLogger = globalLogger.Level(parsed)

	return nil
}

// Get returns the configured logger.
func Get() zerolog.Logger {
	return globalLogger
}

func Debug() *zerolog.Event { return globalLogger.Debug() }
func Info() *zerolog.Event  { return globalLogger.Info() }
func Warn() *zerolog.Event  { return globalLogger.Warn() }
func Error() *zerolog.Event { return globalLogger.Error() }
func Fatal() *zerolog.Event { return globalLogger.Fatal() }
