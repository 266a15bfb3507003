package logging

import (
	"context"
)

// Level represents log severity
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger defines the interface for logging.
// Narration of merge outcomes goes to stdout/stderr through the output
// package; the Logger records the same events with structured fields.
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields Fields)

	// Info logs an info message
	Info(ctx context.Context, msg string, fields Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a logger with additional fields
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}

// Options selects the logger built by Open
type Options struct {
	File       string
	Format     string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// Open returns a FileLogger when opts.File is set and a NullLogger otherwise
func Open(opts Options) (Logger, error) {
	if opts.File == "" {
		return NewNullLogger(), nil
	}

	format := FormatText
	if opts.Format == string(FormatJSON) {
		format = FormatJSON
	}

	return NewFileLogger(FileLoggerConfig{
		Path:       opts.File,
		Format:     format,
		Level:      ParseLevel(opts.Level),
		MaxSizeMB:  opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	})
}

// NullLogger is a logger that discards all output
type NullLogger struct{}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields)            {}
func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields)             {}
func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields)             {}
func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}

// WithFields returns the same null logger
func (l *NullLogger) WithFields(fields Fields) Logger {
	return l
}

// Close does nothing
func (l *NullLogger) Close() error {
	return nil
}
