package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// VerboseChecker reports whether verbose output is enabled.
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes component-scoped messages to stderr. Debug and Info are
// gated on the verbose state; Warn and Error always print.
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	writer         io.Writer
}

// New creates a logger for the given component. A nil checker disables
// Debug and Info output.
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		writer:         os.Stderr,
	}
}

// NewWithCallback creates a logger whose verbose state comes from a callback.
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: &callbackChecker{callback: verboseCheck},
		writer:         os.Stderr,
	}
}

// WithComponent derives a logger with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		writer:         l.writer,
	}
}

// SetWriter redirects output; the TUI uses this to keep log lines off the
// alternate screen.
func (l *Logger) SetWriter(w io.Writer) {
	l.writer = w
}

type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

// Debug logs debug messages (only when verbose).
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verboseChecker != nil && l.verboseChecker.IsVerbose() {
		l.log("DEBUG", msg, args...)
	}
}

// Info logs informational messages (only when verbose).
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verboseChecker != nil && l.verboseChecker.IsVerbose() {
		l.log("INFO", msg, args...)
	}
}

// Warn logs warning messages (always shown).
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log("WARN", msg, args...)
}

// Error logs error messages (always shown).
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log("ERROR", msg, args...)
}

func (l *Logger) log(level, msg string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := fmt.Sprintf(msg, args...)
	logLine := fmt.Sprintf("[%s] %s [%s] %s\n", timestamp, level, component, formattedMsg)

	if _, err := fmt.Fprint(l.writer, logLine); err != nil {
		// The logger has nowhere left to report its own failures.
		_ = err
	}
}
