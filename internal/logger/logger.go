// Package logger provides the verbose trace output used while compiling
// patterns and generating code.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const prefix = "[tinyre] "

// Logger writes verbose output when enabled. A nil *Logger is valid and
// discards everything.
type Logger struct {
	enabled bool
	out     io.Writer
	depth   int
}

// New creates a logger writing to stderr.
func New(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	if l != nil {
		l.out = w
	}
}

// Log prints a formatted message, indented by the current depth.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.Enabled() {
		fmt.Fprintf(l.out, prefix+strings.Repeat("  ", l.depth)+format+"\n", args...)
	}
}

// Section prints a section header.
func (l *Logger) Section(name string) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "\n%s=== %s ===\n", prefix, name)
	}
}

// Enter logs a message and indents everything logged until the returned
// function is called.
func (l *Logger) Enter(format string, args ...interface{}) func() {
	if !l.Enabled() {
		return func() {}
	}
	l.Log(format, args...)
	l.depth++
	return func() { l.depth-- }
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}
