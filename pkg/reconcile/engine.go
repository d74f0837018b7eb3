// Package reconcile walks a synchronized tree and resolves device conflict
// files against their canonical counterparts.
package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sdejongh/conflictsweep/pkg/logging"
	"github.com/sdejongh/conflictsweep/pkg/match"
	"github.com/sdejongh/conflictsweep/pkg/models"
	"github.com/sdejongh/conflictsweep/pkg/output"
	"github.com/sdejongh/conflictsweep/pkg/storage"
)

// timeLayout is used for modification times in log lines
const timeLayout = "2006-01-02 15:04:05"

// Engine orchestrates a single sweep. It is not safe for concurrent use;
// the run state lives in the report it returns.
type Engine struct {
	backend   storage.Backend
	matcher   *match.Matcher
	formatter output.Formatter
	logger    logging.Logger
	operation *models.RunOperation

	report *models.RunReport
}

// NewEngine creates a new sweep engine. formatter and logger may be nil.
func NewEngine(
	backend storage.Backend,
	matcher *match.Matcher,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.RunOperation,
) *Engine {
	if formatter == nil {
		formatter = output.NewMultiFormatter()
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:   backend,
		matcher:   matcher,
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// Run walks the tree from the backend root and returns the report. Errors
// met during the walk are logged and recorded in the report; Run itself
// only fails when the engine is misconfigured.
func (e *Engine) Run(ctx context.Context) (*models.RunReport, error) {
	if e.backend == nil || e.matcher == nil || e.operation == nil {
		return nil, fmt.Errorf("engine requires a backend, a matcher and an operation")
	}

	e.report = models.NewRunReport(e.operation)
	e.report.StartTime = time.Now()

	e.logStart(ctx)
	if err := e.formatter.Start(nil); err != nil {
		return nil, fmt.Errorf("failed to start output: %w", err)
	}

	outcome := e.visit(ctx, e.backend.Root(), 0)
	if outcome.PartiallyFailed() {
		e.logger.Debug(ctx, "Walk finished with abandoned branches", logging.Fields{
			"failures": len(outcome.Failures),
		})
	}

	if ctx.Err() != nil {
		e.report.Status = models.StatusCancelled
	}

	e.report.EndTime = time.Now()
	e.report.Duration = e.report.EndTime.Sub(e.report.StartTime)

	e.logSummary(ctx)
	if err := e.formatter.Complete(e.report); err != nil {
		e.logger.Error(ctx, "Failed to write output", err, nil)
	}

	return e.report, nil
}

// visit processes one directory: every subdirectory first, depth-first,
// then the files of dir itself. A failure to list dir abandons the rest of
// dir but not its siblings.
func (e *Engine) visit(ctx context.Context, dir string, depth int) Outcome {
	out := Outcome{Path: dir}

	if err := ctx.Err(); err != nil {
		e.branchFailed(ctx, &out, dir, "walk", err)
		return out
	}
	if depth > e.operation.MaxDepth {
		e.branchFailed(ctx, &out, dir, "walk", fmt.Errorf("%w (%d)", ErrMaxDepth, e.operation.MaxDepth))
		return out
	}

	e.report.Stats.DirectoriesExamined++
	e.formatter.Progress(output.ProgressUpdate{
		Type:        "dir_start",
		Path:        dir,
		Directories: e.report.Stats.DirectoriesExamined,
		Files:       e.report.Stats.FilesExamined,
	})
	e.logger.Debug(ctx, "Examining directory", logging.Fields{"dir": dir, "depth": depth})

	entries, err := e.backend.ReadDir(ctx, dir)
	if err != nil {
		e.branchFailed(ctx, &out, dir, "list", err)
		return out
	}

	for _, entry := range entries {
		if !entry.IsDir || e.excluded(ctx, entry) {
			continue
		}
		out.absorb(e.visit(ctx, entry.Path, depth+1))
	}

	// Files are listed after the subtree so the listing reflects its changes
	files, err := e.backend.ReadDir(ctx, dir)
	if err != nil {
		e.branchFailed(ctx, &out, dir, "list", err)
		return out
	}

	for _, file := range files {
		if file.IsDir || e.excluded(ctx, file) {
			continue
		}
		e.processFile(ctx, file)
	}

	return out
}

// processFile tests every device pattern against the file name. A file
// matching several patterns is reconciled once per pattern.
func (e *Engine) processFile(ctx context.Context, file storage.FileInfo) {
	e.report.Stats.FilesExamined++

	for _, p := range e.matcher.Patterns() {
		res, ok := p.Match(file.Name)
		if !ok {
			continue
		}

		e.logger.Debug(ctx, "Conflict suffix matched", logging.Fields{
			"file":      file.Path,
			"pattern":   p.String(),
			"canonical": res.CanonicalName,
		})

		e.reconcile(ctx, models.Conflict{
			Path:          file.Path,
			CanonicalPath: filepath.Join(filepath.Dir(file.Path), res.CanonicalName),
			Device:        res.Device,
			Pattern:       p.String(),
		})
	}
}

func (e *Engine) excluded(ctx context.Context, info storage.FileInfo) bool {
	if len(e.operation.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(e.backend.Root(), info.Path)
	if err != nil {
		return false
	}
	if shouldExclude(rel, info.IsDir, e.operation.Exclude) {
		e.logger.Debug(ctx, "Excluded", logging.Fields{"path": info.Path})
		return true
	}
	return false
}

// branchFailed logs and records a directory whose remaining work is abandoned
func (e *Engine) branchFailed(ctx context.Context, out *Outcome, dir, op string, err error) {
	out.fail(dir, err)
	e.report.Stats.DirectoriesFailed++
	e.report.AddError(dir, models.ErrorBranch, op, err)
	e.formatter.Progress(output.ProgressUpdate{Type: "dir_error", Path: dir, Error: err})
	e.logger.Critical(ctx, "Cannot process directory "+dir, err, nil)
}

// fileFailed logs and records a failed per-file operation
func (e *Engine) fileFailed(ctx context.Context, path, op string, err error) {
	e.report.Stats.FilesErrored++
	e.report.AddError(path, models.ErrorFile, op, err)
	e.formatter.Progress(output.ProgressUpdate{Type: "file_error", Path: path, Error: err})
	e.logger.Error(ctx, fmt.Sprintf("Failed to %s %s", op, path), err, nil)
}

func (e *Engine) logStart(ctx context.Context) {
	if e.operation.DryRun {
		e.logger.Info(ctx, "Displaying results only, no files will be moved or deleted.", nil)
	}
	if e.operation.Identify {
		e.logger.Info(ctx, "Identifying devices only, no files will be moved or deleted.", nil)
	}

	e.logger.Info(ctx, "       Sync directory: "+e.backend.Root(), nil)

	if !e.operation.Identify {
		e.logger.Info(ctx, "     Checking devices: "+strings.Join(e.operation.Devices, ", "), nil)
		if e.matcher.Len() == 0 {
			e.logger.Warn(ctx, "No devices configured, conflict matching is disabled", nil)
		}
	}
}

func (e *Engine) logSummary(ctx context.Context) {
	s := e.report.Stats
	e.logger.Info(ctx, fmt.Sprintf(" Directories Examined: %d", s.DirectoriesExamined), nil)
	e.logger.Info(ctx, fmt.Sprintf("          Files Moved: %d", s.FilesMoved), nil)
	e.logger.Info(ctx, fmt.Sprintf("        Files Removed: %d", s.FilesRemoved), nil)
	if s.OrphansFound > 0 {
		e.logger.Info(ctx, fmt.Sprintf("     Orphans Reported: %d", s.OrphansFound), nil)
	}
	if len(e.report.Errors) > 0 {
		e.logger.Info(ctx, fmt.Sprintf("               Errors: %d", len(e.report.Errors)), nil)
	}
	e.logger.Info(ctx, "   Devices Identified: "+strings.Join(e.report.Devices.List(), ", "), nil)
}
