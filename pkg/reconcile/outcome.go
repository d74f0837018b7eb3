package reconcile

import (
	"errors"
	"strings"
)

// ErrMaxDepth is reported for directories nested deeper than the operation allows
var ErrMaxDepth = errors.New("maximum directory depth exceeded")

// BranchFailure records a directory whose remaining work was abandoned
type BranchFailure struct {
	Path string
	Err  error
}

// Outcome is the result of visiting one directory and everything below it
type Outcome struct {
	Path     string
	Failures []BranchFailure
}

// Completed reports whether the whole branch was processed
func (o Outcome) Completed() bool {
	return len(o.Failures) == 0
}

// PartiallyFailed reports whether some part of the branch was abandoned
func (o Outcome) PartiallyFailed() bool {
	return !o.Completed()
}

// Err joins the branch failures, or returns nil for a completed branch
func (o Outcome) Err() error {
	if o.Completed() {
		return nil
	}
	errs := make([]error, len(o.Failures))
	for i, f := range o.Failures {
		errs[i] = &branchError{failure: f}
	}
	return errors.Join(errs...)
}

func (o *Outcome) fail(path string, err error) {
	o.Failures = append(o.Failures, BranchFailure{Path: path, Err: err})
}

func (o *Outcome) absorb(child Outcome) {
	o.Failures = append(o.Failures, child.Failures...)
}

type branchError struct {
	failure BranchFailure
}

func (e *branchError) Error() string {
	var b strings.Builder
	b.WriteString(e.failure.Path)
	b.WriteString(": ")
	b.WriteString(e.failure.Err.Error())
	return b.String()
}

func (e *branchError) Unwrap() error {
	return e.failure.Err
}
