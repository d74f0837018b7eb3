package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sdejongh/conflictsweep/pkg/logging"
	"github.com/sdejongh/conflictsweep/pkg/models"
	"github.com/sdejongh/conflictsweep/pkg/output"
)

// Decide picks the survivor between a canonical file and its conflict copy.
// The conflict file wins only when the canonical file is strictly older.
func Decide(canonicalModTime, conflictModTime time.Time) models.Action {
	if canonicalModTime.Before(conflictModTime) {
		return models.ActionReplace
	}
	return models.ActionDiscard
}

// reconcile applies the policy to one matched conflict file
func (e *Engine) reconcile(ctx context.Context, c models.Conflict) {
	info, err := e.backend.Stat(ctx, c.Path)
	if err != nil {
		// An earlier pattern may already have moved or removed the file
		e.fileFailed(ctx, c.Path, "stat", err)
		return
	}
	c.ModTime = info.ModTime

	exists, err := e.backend.Exists(ctx, c.CanonicalPath)
	if err != nil {
		e.fileFailed(ctx, c.CanonicalPath, "check", err)
		return
	}
	if !exists {
		e.orphan(ctx, c)
		return
	}

	canonical, err := e.backend.Stat(ctx, c.CanonicalPath)
	if err != nil {
		e.fileFailed(ctx, c.CanonicalPath, "stat", err)
		return
	}
	if canonical.IsDir {
		e.orphan(ctx, c)
		return
	}

	if c.Device != "" && e.report.Devices.Add(c.Device) {
		e.logger.Debug(ctx, "Device identified", logging.Fields{"device": c.Device, "file": c.Path})
	}

	if e.operation.Identify {
		e.record(c, models.ActionIdentify, canonical.ModTime)
		return
	}

	switch Decide(canonical.ModTime, c.ModTime) {
	case models.ActionReplace:
		e.logger.Verbose(ctx, fmt.Sprintf("Replacing %s - %s with %s - %s",
			canonical.ModTime.Format(timeLayout), c.CanonicalPath,
			c.ModTime.Format(timeLayout), filepath.Base(c.Path)), nil)

		if !e.operation.DryRun {
			if err := e.backend.Remove(ctx, c.CanonicalPath); err != nil {
				e.fileFailed(ctx, c.CanonicalPath, "delete", err)
				return
			}
			if err := e.backend.Move(ctx, c.Path, c.CanonicalPath); err != nil {
				e.fileFailed(ctx, c.Path, "move", err)
				return
			}
		}

		e.report.Stats.FilesMoved++
		e.record(c, models.ActionReplace, canonical.ModTime)

	default:
		e.logger.Verbose(ctx, fmt.Sprintf("Removing %s - %s",
			c.ModTime.Format(timeLayout), c.Path), nil)

		if !e.operation.DryRun {
			if err := e.backend.Remove(ctx, c.Path); err != nil {
				e.fileFailed(ctx, c.Path, "delete", err)
				return
			}
		}

		e.report.Stats.FilesRemoved++
		e.record(c, models.ActionDiscard, canonical.ModTime)
	}
}

// orphan handles a conflict file with no canonical counterpart
func (e *Engine) orphan(ctx context.Context, c models.Conflict) {
	if e.operation.Identify {
		return
	}

	if !e.operation.RemoveOrphans {
		e.logger.Warn(ctx, fmt.Sprintf("Orphan %s - %s", c.ModTime.Format(timeLayout), c.Path), nil)
		e.report.Stats.OrphansFound++
		e.record(c, models.ActionOrphan, time.Time{})
		return
	}

	e.logger.Verbose(ctx, fmt.Sprintf("Removing Orphan %s - %s", c.ModTime.Format(timeLayout), c.Path), nil)

	if !e.operation.DryRun {
		if err := e.backend.Remove(ctx, c.Path); err != nil {
			e.fileFailed(ctx, c.Path, "delete", err)
			return
		}
	}

	e.report.Stats.FilesRemoved++
	e.record(c, models.ActionRemoveOrphan, time.Time{})
}

func (e *Engine) record(c models.Conflict, action models.Action, canonicalModTime time.Time) {
	rec := models.ActionRecord{
		Path:             c.Path,
		Action:           action,
		Device:           c.Device,
		ModTime:          c.ModTime,
		CanonicalModTime: canonicalModTime,
		DryRun:           e.operation.DryRun,
	}
	if action != models.ActionOrphan && action != models.ActionRemoveOrphan {
		rec.CanonicalPath = c.CanonicalPath
	}
	e.report.Actions = append(e.report.Actions, rec)

	e.formatter.Progress(output.ProgressUpdate{
		Type:   "file_action",
		Path:   c.Path,
		Action: action,
		Files:  e.report.Stats.FilesExamined,
	})
}
