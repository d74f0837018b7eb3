package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/conflictsweep/pkg/models"
)

// HumanFormatter prints the final report in human-readable form
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress does nothing; the log stream already narrates the sweep
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete displays the report
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	return writeHuman(report, f.writer)
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// writeHuman renders the report as a text document
func writeHuman(report *models.RunReport, w io.Writer) error {
	fmt.Fprintf(w, "Conflict Sweep Report\n")
	fmt.Fprintf(w, "=====================\n\n")
	fmt.Fprintf(w, "Operation: %s\n", report.OperationID)
	fmt.Fprintf(w, "Root:      %s\n", report.RootPath)
	fmt.Fprintf(w, "Dry Run:   %v\n", report.DryRun)
	fmt.Fprintf(w, "Identify:  %v\n", report.Identify)
	fmt.Fprintf(w, "Duration:  %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Status:    %s\n\n", report.Status)

	s := report.Stats
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Directories examined: %d\n", s.DirectoriesExamined)
	fmt.Fprintf(w, "  Directories failed:   %d\n", s.DirectoriesFailed)
	fmt.Fprintf(w, "  Files examined:       %d\n", s.FilesExamined)
	fmt.Fprintf(w, "  Files moved:          %d\n", s.FilesMoved)
	fmt.Fprintf(w, "  Files removed:        %d\n", s.FilesRemoved)
	fmt.Fprintf(w, "  Orphans reported:     %d\n", s.OrphansFound)
	fmt.Fprintf(w, "  Files errored:        %d\n", s.FilesErrored)
	fmt.Fprintf(w, "  Devices identified:   %s\n", strings.Join(deviceList(report), ", "))

	if len(report.Actions) > 0 {
		fmt.Fprintf(w, "\nActions:\n")
		for _, a := range report.Actions {
			if a.CanonicalPath != "" {
				fmt.Fprintf(w, "  %-13s %s -> %s\n", a.Action, a.Path, a.CanonicalPath)
			} else {
				fmt.Fprintf(w, "  %-13s %s\n", a.Action, a.Path)
			}
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  [%s] %s: %s\n", e.Kind, e.Path, e.Error)
		}
	}

	return nil
}

func deviceList(report *models.RunReport) []string {
	if report.Devices == nil {
		return nil
	}
	return report.Devices.List()
}
