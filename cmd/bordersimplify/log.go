package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger mirrors the teacher CLI's logger construction: timestamped,
// leveled, colorized to a TTY (SPEC_FULL.md §A.2).
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
