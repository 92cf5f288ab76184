package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Format selects the logrus formatter
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger provides structured logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	backend        *logrus.Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		backend:        newBackend(os.Stderr, FormatText),
	}
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{backend: newBackend(io.Discard, FormatText)}
}

func newBackend(w io.Writer, format Format) *logrus.Logger {
	backend := logrus.New()
	backend.SetOutput(w)
	// Verbosity is decided by the checker, so the backend lets everything through.
	backend.SetLevel(logrus.DebugLevel)
	setFormatter(backend, format)
	return backend
}

func setFormatter(backend *logrus.Logger, format Format) {
	switch format {
	case FormatJSON:
		backend.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		backend.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	}
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		backend:        l.backend,
	}
}

// SetOutput redirects log output
func (l *Logger) SetOutput(w io.Writer) {
	l.backend.SetOutput(w)
}

// SetFormat switches between text and JSON output
func (l *Logger) SetFormat(format Format) {
	setFormatter(l.backend, format)
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.entry(nil).Debugf(msg, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.entry(nil).Infof(msg, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.entry(nil).Warnf(msg, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.entry(nil).Errorf(msg, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.entry(fields).Debugf(msg, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.entry(fields).Infof(msg, args...)
	}
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.entry(fields).Warnf(msg, args...)
}

func (l *Logger) entry(fields []Field) *logrus.Entry {
	component := l.component
	if component == "" {
		component = "main"
	}

	data := make(logrus.Fields, len(fields)+1)
	data["component"] = component
	for _, field := range fields {
		data[field.Key] = field.Value
	}
	return l.backend.WithFields(data)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
