package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/conflictsweep/pkg/models"
)

// JSONFormatter prints the final report as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string                `json:"operation_id"`
	Root        string                `json:"root"`
	DryRun      bool                  `json:"dry_run"`
	Identify    bool                  `json:"identify"`
	Status      string                `json:"status"`
	Duration    string                `json:"duration"`
	DurationMs  int64                 `json:"duration_ms"`
	Stats       JSONStatsData         `json:"stats"`
	Devices     []string              `json:"devices_identified"`
	Actions     []models.ActionRecord `json:"actions,omitempty"`
	Errors      []JSONErrorData       `json:"errors,omitempty"`
}

// JSONStatsData represents the sweep counters
type JSONStatsData struct {
	DirectoriesExamined int `json:"directories_examined"`
	DirectoriesFailed   int `json:"directories_failed"`
	FilesExamined       int `json:"files_examined"`
	FilesMoved          int `json:"files_moved"`
	FilesRemoved        int `json:"files_removed"`
	OrphansFound        int `json:"orphans_found"`
	FilesErrored        int `json:"files_errored"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is ignored to keep the output parseable
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete writes the report as a single JSON document
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	return writeJSON(report, f.writer)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

// NewJSONReportData converts a report into its JSON shape
func NewJSONReportData(report *models.RunReport) JSONReportData {
	s := report.Stats
	data := JSONReportData{
		OperationID: report.OperationID,
		Root:        report.RootPath,
		DryRun:      report.DryRun,
		Identify:    report.Identify,
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			DirectoriesExamined: s.DirectoriesExamined,
			DirectoriesFailed:   s.DirectoriesFailed,
			FilesExamined:       s.FilesExamined,
			FilesMoved:          s.FilesMoved,
			FilesRemoved:        s.FilesRemoved,
			OrphansFound:        s.OrphansFound,
			FilesErrored:        s.FilesErrored,
		},
		Devices: deviceList(report),
		Actions: report.Actions,
	}
	if data.Devices == nil {
		data.Devices = []string{}
	}

	for _, e := range report.Errors {
		data.Errors = append(data.Errors, JSONErrorData{
			Path:      e.Path,
			Kind:      string(e.Kind),
			Operation: e.Operation,
			Error:     e.Error,
		})
	}

	return data
}

func writeJSON(report *models.RunReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewJSONReportData(report))
}
