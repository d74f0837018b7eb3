package models

import (
	"time"
)

// RunReport represents the results of a sweep
type RunReport struct {
	// Operation details
	OperationID string
	RootPath    string
	DryRun      bool
	Identify    bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Devices discovered in file names that collided with a canonical file
	Devices *DeviceSet

	// Decisions taken, in walk order
	Actions []ActionRecord

	// Errors encountered
	Errors []RunError

	// Overall status
	Status RunStatus
}

// NewRunReport creates an empty report for the operation
func NewRunReport(op *RunOperation) *RunReport {
	return &RunReport{
		OperationID: op.ID,
		RootPath:    op.RootPath,
		DryRun:      op.DryRun,
		Identify:    op.Identify,
		Devices:     NewDeviceSet(),
		Status:      StatusSuccess,
	}
}

// Statistics holds sweep counters. Counters only ever increase.
type Statistics struct {
	DirectoriesExamined int
	DirectoriesFailed   int
	FilesExamined       int
	FilesMoved          int
	FilesRemoved        int
	OrphansFound        int
	FilesErrored        int
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates the whole tree was walked without errors
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some files or branches failed
	StatusPartial RunStatus = "partial"
	// StatusCancelled indicates the sweep was cancelled
	StatusCancelled RunStatus = "cancelled"
)

// ErrorKind separates branch failures from per-file failures
type ErrorKind string

const (
	// ErrorBranch means a directory could not be listed or descended into
	ErrorBranch ErrorKind = "branch"
	// ErrorFile means a single file operation failed
	ErrorFile ErrorKind = "file"
)

// RunError represents an error during a sweep
type RunError struct {
	Path      string
	Kind      ErrorKind
	Operation string
	Error     string
	Timestamp time.Time
}

// AddError records an error and downgrades the status to partial
func (r *RunReport) AddError(path string, kind ErrorKind, operation string, err error) {
	r.Errors = append(r.Errors, RunError{
		Path:      path,
		Kind:      kind,
		Operation: operation,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
	if r.Status == StatusSuccess {
		r.Status = StatusPartial
	}
}

// ExitCode returns the process exit code. A completed sweep exits 0 even
// when errors were logged along the way.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusCancelled:
		return 3
	default:
		return 0
	}
}
