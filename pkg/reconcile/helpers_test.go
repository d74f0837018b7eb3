package reconcile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/sdejongh/conflictsweep/pkg/logging"
	"github.com/sdejongh/conflictsweep/pkg/match"
	"github.com/sdejongh/conflictsweep/pkg/models"
	"github.com/sdejongh/conflictsweep/pkg/storage"
)

const testRoot = "/sync"

var (
	sunday  = time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	monday  = sunday.Add(24 * time.Hour)
	tuesday = monday.Add(24 * time.Hour)
)

// failingFs injects errors for chosen paths on top of another afero.Fs
type failingFs struct {
	afero.Fs
	failOpen   map[string]error
	failRemove map[string]error
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if err, ok := f.failOpen[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.Fs.Open(name)
}

func (f *failingFs) Remove(name string) error {
	if err, ok := f.failRemove[filepath.Clean(name)]; ok {
		return err
	}
	return f.Fs.Remove(name)
}

// TestTree builds an in-memory synchronized folder and runs sweeps over it
type TestTree struct {
	t    *testing.T
	mem  afero.Fs
	fs   *failingFs
	logs bytes.Buffer
}

// NewTestTree creates an empty tree rooted at /sync
func NewTestTree(t *testing.T) *TestTree {
	t.Helper()

	mem := afero.NewMemMapFs()
	if err := mem.MkdirAll(testRoot, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	return &TestTree{
		t:   t,
		mem: mem,
		fs: &failingFs{
			Fs:         mem,
			failOpen:   map[string]error{},
			failRemove: map[string]error{},
		},
	}
}

// File creates a file below the root with the given content and mtime
func (tt *TestTree) File(name, content string, modTime time.Time) {
	tt.t.Helper()
	path := filepath.Join(testRoot, name)
	if err := tt.mem.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tt.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := afero.WriteFile(tt.mem, path, []byte(content), 0644); err != nil {
		tt.t.Fatalf("failed to write %s: %v", name, err)
	}
	if err := tt.mem.Chtimes(path, modTime, modTime); err != nil {
		tt.t.Fatalf("failed to set mtime of %s: %v", name, err)
	}
}

// Dir creates a directory below the root
func (tt *TestTree) Dir(name string) {
	tt.t.Helper()
	if err := tt.mem.MkdirAll(filepath.Join(testRoot, name), 0755); err != nil {
		tt.t.Fatalf("failed to create dir %s: %v", name, err)
	}
}

// Exists reports whether a path below the root exists
func (tt *TestTree) Exists(name string) bool {
	ok, _ := afero.Exists(tt.mem, filepath.Join(testRoot, name))
	return ok
}

// Content returns the content of a file below the root
func (tt *TestTree) Content(name string) string {
	tt.t.Helper()
	data, err := afero.ReadFile(tt.mem, filepath.Join(testRoot, name))
	if err != nil {
		tt.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// Files lists every file path below the root
func (tt *TestTree) Files() map[string]string {
	tt.t.Helper()
	files := map[string]string{}
	afero.Walk(tt.mem, testRoot, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			data, _ := afero.ReadFile(tt.mem, path)
			files[path] = string(data)
		}
		return nil
	})
	return files
}

// Operation returns a default operation for the given devices
func (tt *TestTree) Operation(devices ...string) *models.RunOperation {
	return &models.RunOperation{
		ID:        "test-run",
		RootPath:  testRoot,
		Devices:   devices,
		Verbosity: int(logging.DebugLevel),
		MaxDepth:  models.DefaultMaxDepth,
	}
}

// Run sweeps the tree with the operation
func (tt *TestTree) Run(op *models.RunOperation) *models.RunReport {
	tt.t.Helper()
	return tt.RunContext(context.Background(), op)
}

// RunContext sweeps the tree with an explicit context
func (tt *TestTree) RunContext(ctx context.Context, op *models.RunOperation) *models.RunReport {
	tt.t.Helper()

	backend, err := storage.NewWithFs(tt.fs, testRoot)
	if err != nil {
		tt.t.Fatalf("failed to create backend: %v", err)
	}

	var matcher *match.Matcher
	if op.Identify {
		matcher = match.NewIdentifyMatcher()
	} else {
		matcher, err = match.NewMatcher(op.Devices)
		if err != nil {
			tt.t.Fatalf("failed to create matcher: %v", err)
		}
	}

	tt.logs.Reset()
	logger := logging.NewConsoleLogger(&tt.logs, logging.Level(op.Verbosity))

	report, err := NewEngine(backend, matcher, nil, logger, op).Run(ctx)
	if err != nil {
		tt.t.Fatalf("Run() error = %v", err)
	}
	return report
}

// Logs returns the log output of the last run
func (tt *TestTree) Logs() string {
	return tt.logs.String()
}
