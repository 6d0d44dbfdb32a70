package services

import (
	"errors"
	"fmt"

	"peerlink/internal/sanitize"
)

// Sentinel errors callers branch on. Every service operation returns either
// a value or one of these (possibly wrapped); nothing generic leaks out.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrConstraint = errors.New("constraint violated")
	ErrForbidden  = errors.New("not allowed")
)

// ValidationError carries the content-policy problems that blocked a write.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Problems[0]
}

// StorageError wraps a backend failure. Always surfaced, never swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// wrapStorage keeps typed domain errors as-is and wraps anything else
// (driver failures, aborted transactions) as a StorageError.
func wrapStorage(op string, err error) error {
	if err == nil || isDomainErr(err) {
		return err
	}
	return storageErr(op, err)
}

func isDomainErr(err error) bool {
	var ve *ValidationError
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConstraint) ||
		errors.Is(err, ErrForbidden) ||
		errors.As(err, &ve)
}

// cleanContent applies the shared write gate from the sanitize package.
// Emptiness and length problems block the write outright. Suspicious-content
// problems are downgraded to warnings and the sanitized text is stored; this
// flag-and-proceed behavior is deliberate, callers surface the warnings.
func cleanContent(text string) (string, []string, error) {
	problems := sanitize.Validate(text)
	if len(problems) == 0 {
		return text, nil, nil
	}

	suspicious := sanitize.Suspicious(text)
	blocking := len(problems)
	if suspicious {
		blocking--
	}
	if blocking > 0 {
		return "", nil, &ValidationError{Problems: problems}
	}

	return sanitize.Sanitize(text), problems, nil
}
