package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/conflictsweep/pkg/models"
)

func sampleReport() *models.RunReport {
	report := models.NewRunReport(&models.RunOperation{
		ID:       "run-1",
		RootPath: "/sync",
		DryRun:   true,
	})
	report.Duration = 1500 * time.Millisecond
	report.Stats = models.Statistics{
		DirectoriesExamined: 4,
		FilesExamined:       9,
		FilesMoved:          1,
		FilesRemoved:        2,
		OrphansFound:        1,
	}
	report.Devices.Add("DESKTOP1")
	report.Devices.Add("LAPTOP2")
	report.Actions = []models.ActionRecord{
		{Path: "/sync/a-DESKTOP1.txt", CanonicalPath: "/sync/a.txt", Action: models.ActionReplace, Device: "DESKTOP1", DryRun: true},
		{Path: "/sync/b-LAPTOP2.txt", Action: models.ActionOrphan},
	}
	report.AddError("/sync/locked", models.ErrorBranch, "list", errors.New("permission denied"))
	return report
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()
	if err := f.Start(&buf); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := f.Progress(ProgressUpdate{Type: "dir_start", Path: "/sync"}); err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if err := f.Complete(sampleReport()); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Conflict Sweep Report",
		"Operation: run-1",
		"Dry Run:   true",
		"Duration:  1.5s",
		"Status:    partial",
		"Directories examined: 4",
		"Files moved:          1",
		"Devices identified:   DESKTOP1, LAPTOP2",
		"replace       /sync/a-DESKTOP1.txt -> /sync/a.txt",
		"orphan        /sync/b-LAPTOP2.txt",
		"[branch] /sync/locked: permission denied",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if f.Name() != "human" {
		t.Errorf("Name() = %s", f.Name())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()
	f.Start(&buf)
	if err := f.Complete(sampleReport()); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	var data JSONReportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if data.OperationID != "run-1" || data.Status != "partial" {
		t.Errorf("header = %+v", data)
	}
	if data.DurationMs != 1500 {
		t.Errorf("DurationMs = %d, want 1500", data.DurationMs)
	}
	if data.Stats.FilesRemoved != 2 || data.Stats.OrphansFound != 1 {
		t.Errorf("Stats = %+v", data.Stats)
	}
	if len(data.Devices) != 2 || data.Devices[0] != "DESKTOP1" {
		t.Errorf("Devices = %v", data.Devices)
	}
	if len(data.Actions) != 2 || data.Actions[0].Action != models.ActionReplace {
		t.Errorf("Actions = %+v", data.Actions)
	}
	if len(data.Errors) != 1 || data.Errors[0].Kind != "branch" {
		t.Errorf("Errors = %+v", data.Errors)
	}
}

func TestJSONFormatter_EmptyDevices(t *testing.T) {
	report := models.NewRunReport(&models.RunOperation{ID: "run-2", RootPath: "/sync"})

	var buf bytes.Buffer
	if err := writeJSON(report, &buf); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"devices_identified": []`) {
		t.Errorf("devices should encode as an empty list:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), `"errors"`) {
		t.Errorf("errors should be omitted when empty:\n%s", buf.String())
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()

	t.Run("Human", func(t *testing.T) {
		path := filepath.Join(dir, "report.txt")
		if err := WriteReport(sampleReport(), path, "human"); err != nil {
			t.Fatalf("WriteReport() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "Conflict Sweep Report") {
			t.Errorf("unexpected content:\n%s", data)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "report.json")
		if err := WriteReport(sampleReport(), path, "json"); err != nil {
			t.Fatalf("WriteReport() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !json.Valid(data) {
			t.Errorf("report is not valid JSON:\n%s", data)
		}
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		path := filepath.Join(dir, "missing", "report.txt")
		if err := WriteReport(sampleReport(), path, "human"); err == nil {
			t.Error("WriteReport() should fail for a missing directory")
		}
	})
}

func TestProgressFormatter(t *testing.T) {
	t.Run("DrawsOnBuffer", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewProgressFormatter()
		if err := f.Start(&buf); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if !f.Enabled() {
			t.Fatal("progress should be enabled for a plain writer")
		}

		f.Progress(ProgressUpdate{Type: "dir_start", Path: "/sync", Directories: 1})
		f.Progress(ProgressUpdate{Type: "dir_start", Path: "/sync/a", Directories: 2, Files: 3})
		f.Progress(ProgressUpdate{Type: "file_action", Path: "/sync/a/x-PC1.txt", Files: 3})
		f.Progress(ProgressUpdate{Type: "file_error", Path: "/sync/a/y-PC1.txt", Files: 4})

		if err := f.Complete(sampleReport()); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		if f.directories != 2 || f.files != 4 || f.actions != 1 || f.errors != 1 {
			t.Errorf("counters = %d dirs, %d files, %d actions, %d errors",
				f.directories, f.files, f.actions, f.errors)
		}
		if !strings.Contains(buf.String(), "Sweeping") {
			t.Errorf("bar output missing label: %q", buf.String())
		}
	})

	t.Run("DisabledForRegularFile", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "progress.log"))
		if err != nil {
			t.Fatal(err)
		}
		defer file.Close()

		f := NewProgressFormatter()
		f.Start(file)
		if f.Enabled() {
			t.Error("progress should be disabled when the stream is not a terminal")
		}
		f.Progress(ProgressUpdate{Type: "dir_start"})
		if err := f.Complete(sampleReport()); err != nil {
			t.Errorf("Complete() error = %v", err)
		}
	})
}

func TestMultiFormatter(t *testing.T) {
	var human, js bytes.Buffer
	h := NewHumanFormatter()
	j := NewJSONFormatter()
	h.Start(&human)
	j.Start(&js)

	m := NewMultiFormatter(h, nil, j)
	if err := m.Complete(sampleReport()); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if human.Len() == 0 || js.Len() == 0 {
		t.Error("every formatter should receive the report")
	}
}
