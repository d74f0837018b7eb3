package output

import (
	"io"

	"github.com/sdejongh/conflictsweep/pkg/models"
)

// ProgressUpdate represents a progress notification during a sweep
type ProgressUpdate struct {
	Type        string // "dir_start", "dir_error", "file_action", "file_error"
	Path        string
	Action      models.Action
	Directories int
	Files       int
	Error       error
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON and progress formatters
type Formatter interface {
	// Start initializes the formatter; a nil writer selects its default stream
	Start(writer io.Writer) error

	// Progress reports progress during the sweep
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the report
	Complete(report *models.RunReport) error

	// Name returns the formatter name
	Name() string
}

// MultiFormatter forwards every call to several formatters
type MultiFormatter struct {
	formatters []Formatter
}

// NewMultiFormatter combines the non-nil formatters
func NewMultiFormatter(formatters ...Formatter) *MultiFormatter {
	m := &MultiFormatter{}
	for _, f := range formatters {
		if f != nil {
			m.formatters = append(m.formatters, f)
		}
	}
	return m
}

// Start starts every formatter with its own default stream
func (m *MultiFormatter) Start(writer io.Writer) error {
	for _, f := range m.formatters {
		if err := f.Start(writer); err != nil {
			return err
		}
	}
	return nil
}

// Progress forwards the update
func (m *MultiFormatter) Progress(update ProgressUpdate) error {
	for _, f := range m.formatters {
		if err := f.Progress(update); err != nil {
			return err
		}
	}
	return nil
}

// Complete forwards the report
func (m *MultiFormatter) Complete(report *models.RunReport) error {
	for _, f := range m.formatters {
		if err := f.Complete(report); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the formatter name
func (m *MultiFormatter) Name() string {
	return "multi"
}
