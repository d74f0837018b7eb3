package logging

import "context"

// NullLogger is a logger that discards all output
type NullLogger struct{}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Critical(ctx context.Context, msg string, err error, fields Fields) {}
func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields)    {}
func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields)               {}
func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields)               {}
func (l *NullLogger) Verbose(ctx context.Context, msg string, fields Fields)            {}
func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields)              {}

// WithFields returns the same null logger
func (l *NullLogger) WithFields(fields Fields) Logger {
	return l
}

// Close does nothing
func (l *NullLogger) Close() error {
	return nil
}
