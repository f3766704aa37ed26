// Package logging builds the leveled diagnostic logger shared by commands.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level     string // debug, info, warn, error; empty means info
	Quiet     bool   // only errors
	Timestamp bool
	Writer    io.Writer // defaults to stderr
}

// New returns a logger writing to stderr. An unknown level falls back to info
// and is reported through the returned logger.
func New(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	var badLevel string
	if s := strings.TrimSpace(opts.Level); s != "" {
		parsed, err := log.ParseLevel(s)
		if err != nil {
			badLevel = s
		} else {
			level = parsed
		}
	}
	if opts.Quiet {
		level = log.ErrorLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "bburn",
		ReportTimestamp: opts.Timestamp,
	})
	if badLevel != "" {
		logger.Warn("unknown log level, using info", "level", badLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
