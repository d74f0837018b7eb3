package models

import (
	"errors"
	"testing"
	"time"
)

// ============== RunOperation Tests ==============

func TestRunOperationValidate(t *testing.T) {
	valid := func() *RunOperation {
		return &RunOperation{
			RootPath:  "/home/user/OneDrive",
			Devices:   []string{"DESKTOP1", "LAPTOP2"},
			Verbosity: 1,
			MaxDepth:  DefaultMaxDepth,
		}
	}

	t.Run("ValidOperation", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("NoDevices", func(t *testing.T) {
		op := valid()
		op.Devices = nil
		if err := op.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil for empty device list", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(op *RunOperation)
		field  string
	}{
		{"EmptyRoot", func(op *RunOperation) { op.RootPath = "" }, "RootPath"},
		{"NegativeVerbosity", func(op *RunOperation) { op.Verbosity = -1 }, "Verbosity"},
		{"VerbosityTooHigh", func(op *RunOperation) { op.Verbosity = 6 }, "Verbosity"},
		{"ZeroDepth", func(op *RunOperation) { op.MaxDepth = 0 }, "MaxDepth"},
		{"EmptyDevice", func(op *RunOperation) { op.Devices = []string{"PC1", ""} }, "Devices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := valid()
			tt.mutate(op)

			err := op.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error should be *ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %s, want %s", vErr.Field, tt.field)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "RootPath", Message: "root path is required"}
	if err.Error() != "RootPath: root path is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}

// ============== DeviceSet Tests ==============

func TestDeviceSet(t *testing.T) {
	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		s := NewDeviceSet()
		s.Add("LAPTOP2")
		s.Add("DESKTOP1")
		s.Add("TABLET")

		got := s.List()
		want := []string{"LAPTOP2", "DESKTOP1", "TABLET"}
		if len(got) != len(want) {
			t.Fatalf("List() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("List()[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("IgnoresDuplicates", func(t *testing.T) {
		s := NewDeviceSet()
		if !s.Add("PC1") {
			t.Error("first Add() should return true")
		}
		if s.Add("PC1") {
			t.Error("second Add() should return false")
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		s := NewDeviceSet()
		s.Add("pc1")
		s.Add("PC1")
		if s.Len() != 2 {
			t.Errorf("Len() = %d, want 2", s.Len())
		}
	})

	t.Run("ZeroValueUsable", func(t *testing.T) {
		var s DeviceSet
		s.Add("PC1")
		if !s.Contains("PC1") {
			t.Error("zero-value set should record devices")
		}
	})

	t.Run("ListIsACopy", func(t *testing.T) {
		s := NewDeviceSet()
		s.Add("PC1")
		list := s.List()
		list[0] = "changed"
		if !s.Contains("PC1") || s.List()[0] != "PC1" {
			t.Error("mutating List() result should not affect the set")
		}
	})
}

// ============== RunReport Tests ==============

func TestRunReport(t *testing.T) {
	op := &RunOperation{ID: "op-1", RootPath: "/root", DryRun: true}

	t.Run("NewReport", func(t *testing.T) {
		r := NewRunReport(op)
		if r.OperationID != "op-1" || r.RootPath != "/root" || !r.DryRun {
			t.Errorf("NewRunReport() did not copy operation details: %+v", r)
		}
		if r.Status != StatusSuccess {
			t.Errorf("Status = %s, want success", r.Status)
		}
		if r.Devices == nil {
			t.Error("Devices should be initialised")
		}
	})

	t.Run("AddErrorMarksPartial", func(t *testing.T) {
		r := NewRunReport(op)
		r.AddError("/root/a.txt", ErrorFile, "delete", errors.New("file locked"))

		if r.Status != StatusPartial {
			t.Errorf("Status = %s, want partial", r.Status)
		}
		if len(r.Errors) != 1 {
			t.Fatalf("len(Errors) = %d, want 1", len(r.Errors))
		}
		e := r.Errors[0]
		if e.Path != "/root/a.txt" || e.Kind != ErrorFile || e.Error != "file locked" {
			t.Errorf("unexpected error record: %+v", e)
		}
		if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Minute {
			t.Error("Timestamp should be set to now")
		}
	})

	t.Run("AddErrorKeepsCancelled", func(t *testing.T) {
		r := NewRunReport(op)
		r.Status = StatusCancelled
		r.AddError("/root", ErrorBranch, "list", errors.New("boom"))
		if r.Status != StatusCancelled {
			t.Errorf("Status = %s, want cancelled", r.Status)
		}
	})
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 0},
		{StatusCancelled, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
