// Package trace is the library's internal diagnostic log. It stays
// silent unless the CLACK_TRACE environment variable enables it, so
// embedding applications never see parser chatter on their stderr.
//
// CLACK_TRACE accepts a level name (debug, info, warn, error); any
// other non-empty value means debug.
package trace

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var (
	logger  *log.Logger
	enabled atomic.Bool
)

//nolint:gochecknoinits // the trace switch must be decided before any parse runs
func init() {
	logger = log.NewWithOptions(io.Discard, log.Options{
		ReportTimestamp: false,
		Prefix:          "clack",
	})

	value, ok := os.LookupEnv("CLACK_TRACE")
	if !ok || value == "" {
		return
	}
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parseLevel(value))
	enabled.Store(true)
}

func parseLevel(value string) log.Level {
	switch strings.ToLower(value) {
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.DebugLevel
	}
}

// Enabled reports whether trace output is active. Hot paths check it
// before assembling key/value pairs.
func Enabled() bool {
	return enabled.Load()
}

// SetOutput redirects trace output and switches tracing on. Tests use
// it to capture diagnostics deterministically.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
	logger.SetLevel(log.DebugLevel)
	enabled.Store(true)
}

// Disable turns tracing back off.
func Disable() {
	logger.SetOutput(io.Discard)
	enabled.Store(false)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, keyvals ...any) {
	if !enabled.Load() {
		return
	}
	logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, keyvals ...any) {
	if !enabled.Load() {
		return
	}
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, keyvals ...any) {
	if !enabled.Load() {
		return
	}
	logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, keyvals ...any) {
	if !enabled.Load() {
		return
	}
	logger.Error(msg, keyvals...)
}
