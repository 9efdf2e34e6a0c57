package model

import (
	"errors"
	"fmt"
)

// OperationStatus is the outcome of a single patch operation.
type OperationStatus int

const (
	// Applied indicates at least one method was rewritten and persisted.
	Applied OperationStatus = iota
	// Unchanged indicates the transform ran but produced identical lines.
	Unchanged
	// NotFound indicates the class, method or anchor was absent.
	NotFound
	// Failed indicates a malformed listing or an I/O error.
	Failed
)

func (s OperationStatus) String() string {
	switch s {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case NotFound:
		return "not found"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOperationStatus is the inverse of OperationStatus.String.
func ParseOperationStatus(s string) (OperationStatus, error) {
	for _, status := range []OperationStatus{Applied, Unchanged, NotFound, Failed} {
		if status.String() == s {
			return status, nil
		}
	}

	return 0, fmt.Errorf("unknown operation status %q", s)
}

// OperationResult describes what one operation did.
type OperationResult struct {
	Name      string
	Class     string
	Method    string
	Scope     Scope
	Transform string
	Path      Path
	Status    OperationStatus
	Modified  int
	Err       error
	Diff      string
}

// OK reports whether the operation rewrote at least one method.
func (r OperationResult) OK() bool {
	return r.Status == Applied
}

// StatusFor maps an operation error onto its status.
func StatusFor(err error) OperationStatus {
	switch {
	case err == nil:
		return Applied
	case errors.Is(err, ErrClassNotFound), errors.Is(err, ErrMethodNotFound), errors.Is(err, ErrAnchorNotFound):
		return NotFound
	default:
		return Failed
	}
}

// Tally counts operation results by status.
type Tally struct {
	Applied   int
	Unchanged int
	NotFound  int
	Failed    int
}

// NewTally summarizes results.
func NewTally(results []OperationResult) Tally {
	var t Tally

	for _, r := range results {
		switch r.Status {
		case Applied:
			t.Applied++
		case Unchanged:
			t.Unchanged++
		case NotFound:
			t.NotFound++
		case Failed:
			t.Failed++
		}
	}

	return t
}

// SanitizeResult summarizes a bulk sanitize pass.
type SanitizeResult struct {
	Scanned   int
	Triggered int
	Rewritten int
	Methods   int
	Errors    map[Path]error
}
