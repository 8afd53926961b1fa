// Package logging builds the loggers the commands share.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stdout with timestamps and caller info.
// Unknown levels fall back to info.
func New(prefix, level string) *log.Logger {
	return NewWithWriter(os.Stdout, prefix, level)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, prefix, level string) *log.Logger {
	logger := log.New(w)
	logger.SetPrefix(prefix)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetReportCaller(true)
	logger.SetLevel(ParseLevel(level))

	return logger
}

// ParseLevel maps a config value to a level. Empty and unknown values mean
// info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
