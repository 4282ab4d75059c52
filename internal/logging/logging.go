// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level default logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New creates a logger writing to w with the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	setLevel(logger, level)
	return logger
}

func setLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the package-level default logger. JSON-RPC frames own
// stdout on the stdio transport, so the default always writes to stderr.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New(os.Stderr, "info")
	})
	return defaultLogger
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultLoggerOnce.Do(func() {})
	defaultLogger = logger
}
