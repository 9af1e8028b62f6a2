// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
// Loggers write to stderr: stdout carries protocol answers only.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// ParseLevel maps a config level name to a log level, keeping fallback for unknown names
func ParseLevel(name string, fallback log.Level) log.Level {
	if name == "" {
		return fallback
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		log.Warnf("Unknown log level %q, keeping %s", name, fallback)
		return fallback
	}
	return level
}
