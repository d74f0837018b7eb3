package models

import (
	"time"
)

// DefaultMaxDepth bounds directory recursion during a sweep
const DefaultMaxDepth = 256

// RunOperation represents the configuration of a single sweep
type RunOperation struct {
	ID            string
	RootPath      string
	Devices       []string // Known device identifiers, in configured order
	DryRun        bool     // Log and count actions without touching the file system
	RemoveOrphans bool     // Delete conflict files that have no canonical counterpart
	Identify      bool     // Discover device identifiers only, never mutate
	Verbosity     int
	MaxDepth      int
	Exclude       []string
	CreatedAt     time.Time
}

// Validate checks if the operation configuration is valid
func (op *RunOperation) Validate() error {
	if op.RootPath == "" {
		return &ValidationError{Field: "RootPath", Message: "root path is required"}
	}
	if op.Verbosity < 0 || op.Verbosity > 5 {
		return &ValidationError{Field: "Verbosity", Message: "verbosity must be between 0 and 5"}
	}
	if op.MaxDepth < 1 {
		return &ValidationError{Field: "MaxDepth", Message: "max depth must be at least 1"}
	}
	for _, d := range op.Devices {
		if d == "" {
			return &ValidationError{Field: "Devices", Message: "device identifiers cannot be empty"}
		}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
