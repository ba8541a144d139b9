// Package logger provides leveled diagnostic logging for fts5html.
// Messages go to stderr. Warnings and errors are always shown; debug and
// info messages only when verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level orders log messages by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed in front of messages of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
)

// SetVerbose enables or disables debug and info output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether messages of level l are printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose || l >= LevelWarn
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose || l >= LevelWarn {
		fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn prints a warning.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error prints an error.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs the start of an operation and returns a function that logs
// its duration. Typical use: defer logger.Timed("index")().
func Timed(name string) func() {
	start := now()
	Debug("%s: started", name)
	return func() {
		Debug("%s: done in %s", name, now().Sub(start).Round(time.Microsecond))
	}
}
