package logging

import (
	"context"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes plain message lines to a single stream, gated by a
// verbosity threshold. Warnings and errors carry a severity tag.
type ConsoleLogger struct {
	threshold Level
	writer    io.Writer
	mu        *sync.Mutex
	fields    Fields
}

// NewConsoleLogger creates a console logger; a nil writer means stdout
func NewConsoleLogger(w io.Writer, threshold Level) *ConsoleLogger {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleLogger{
		threshold: threshold,
		writer:    w,
		mu:        &sync.Mutex{},
	}
}

// Critical logs a critical message
func (l *ConsoleLogger) Critical(ctx context.Context, msg string, err error, fields Fields) {
	l.log(CriticalLevel, msg, err, fields)
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Verbose logs a verbose message
func (l *ConsoleLogger) Verbose(ctx context.Context, msg string, fields Fields) {
	l.log(VerboseLevel, msg, nil, fields)
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	return &ConsoleLogger{
		threshold: l.threshold,
		writer:    l.writer,
		mu:        l.mu,
		fields:    mergeFields(l.fields, fields),
	}
}

// Close does nothing; the stream is owned by the caller
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) log(level Level, msg string, err error, fields Fields) {
	if !l.threshold.Enabled(level) {
		return
	}

	line := msg
	if level <= WarnLevel {
		line = levelString(level) + ": " + msg
	}
	line += formatTail(err, mergeFields(l.fields, fields)) + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.writer, line)
}
