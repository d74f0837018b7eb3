package logging

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Level represents log severity. Lower values are more severe; a message is
// written when the logger threshold is greater than or equal to its level.
type Level int

const (
	CriticalLevel Level = iota // errors that stop a branch of work
	ErrorLevel                 // recoverable errors
	WarnLevel                  // expected problems
	InfoLevel                  // generally useful information
	VerboseLevel               // almost everything
	DebugLevel                 // super detail
)

// DefaultLevel is the threshold used when none is configured
const DefaultLevel = ErrorLevel

// Enabled reports whether a message at level passes the threshold
func (l Level) Enabled(level Level) bool {
	return l >= level
}

// Valid reports whether the level is one of the six known severities
func (l Level) Valid() bool {
	return l >= CriticalLevel && l <= DebugLevel
}

func (l Level) String() string {
	return levelString(l)
}

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger defines the interface for logging
// Implementations include console, file, multi and null loggers
type Logger interface {
	// Critical logs an error that aborts a unit of work
	Critical(ctx context.Context, msg string, err error, fields Fields)

	// Error logs a recoverable error
	Error(ctx context.Context, msg string, err error, fields Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields Fields)

	// Info logs an info message
	Info(ctx context.Context, msg string, fields Fields)

	// Verbose logs a detailed progress message
	Verbose(ctx context.Context, msg string, fields Fields)

	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields Fields)

	// WithFields returns a logger with additional fields
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}

// levelString returns the string representation of a log level
func levelString(level Level) string {
	switch level {
	case CriticalLevel:
		return "CRITICAL"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case InfoLevel:
		return "INFO"
	case VerboseLevel:
		return "VERBOSE"
	case DebugLevel:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name or its numeric value (0-5)
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "fatal":
		return CriticalLevel, nil
	case "error":
		return ErrorLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "info", "information":
		return InfoLevel, nil
	case "verbose":
		return VerboseLevel, nil
	case "debug":
		return DebugLevel, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultLevel, fmt.Errorf("unknown log level %q", s)
	}
	if !Level(n).Valid() {
		return DefaultLevel, fmt.Errorf("log level %d out of range 0-5", n)
	}
	return Level(n), nil
}

// LevelString returns level as string (exported version)
func LevelString(level Level) string {
	return levelString(level)
}

// mergeFields returns a new map holding base overlaid with extra
func mergeFields(base, extra Fields) Fields {
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
