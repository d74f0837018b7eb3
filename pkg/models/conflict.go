package models

import (
	"time"
)

// Conflict is a conflict-suffixed file paired with its inferred canonical path
type Conflict struct {
	// Path is the full path of the conflict file
	Path string

	// CanonicalPath is Path with the device suffix removed
	CanonicalPath string

	// Device is the identifier embedded in the file name, empty when it
	// does not look like a device name
	Device string

	// Pattern is the device pattern that produced the match
	Pattern string

	// ModTime is the last modification time of the conflict file
	ModTime time.Time
}

// Action describes what the reconciliation did with a conflict file
type Action string

const (
	// ActionReplace replaced the canonical file with the newer conflict file
	ActionReplace Action = "replace"
	// ActionDiscard deleted a conflict file that was not newer than its canonical file
	ActionDiscard Action = "discard"
	// ActionRemoveOrphan deleted a conflict file with no canonical file
	ActionRemoveOrphan Action = "remove-orphan"
	// ActionOrphan reported a conflict file with no canonical file
	ActionOrphan Action = "orphan"
	// ActionIdentify recorded a device without touching files
	ActionIdentify Action = "identify"
)

// ActionRecord is one reconciliation decision taken during a sweep
type ActionRecord struct {
	Path             string    `json:"path"`
	CanonicalPath    string    `json:"canonical_path,omitempty"`
	Action           Action    `json:"action"`
	Device           string    `json:"device,omitempty"`
	ModTime          time.Time `json:"mod_time"`
	CanonicalModTime time.Time `json:"canonical_mod_time,omitempty"`
	DryRun           bool      `json:"dry_run,omitempty"`
}
