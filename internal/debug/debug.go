// Package debug provides conditional debug logging.
//
// Debug logging is enabled by setting the RUNBOOK_DEBUG environment
// variable. When enabled, messages are written to stderr with timestamps;
// when disabled (default), every function is a no-op.
package debug

import (
	"log"
	"os"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("RUNBOOK_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[runbook] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// Logf writes a debug message if debug logging is enabled.
func Logf(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}
