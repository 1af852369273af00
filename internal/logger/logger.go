// Package logger prints leveled, glyph-prefixed messages to stderr
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	verbose bool
	out     io.Writer = os.Stderr

	debugColor   = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// SetVerbose enables or disables verbose logging
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose logging is enabled
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects all log output; nil restores stderr
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// Debug prints debug messages only when verbose mode is enabled
func Debug(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		_, _ = debugColor.Fprintf(out, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints informational messages
func Info(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(out, format+"\n", args...)
}

// Success prints success messages with checkmark
func Success(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = successColor.Fprintf(out, "✓ "+format+"\n", args...)
}

// Error prints error messages
func Error(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = errorColor.Fprintf(out, "✗ "+format+"\n", args...)
}

// Warn prints warning messages
func Warn(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = warnColor.Fprintf(out, "⚠ "+format+"\n", args...)
}
