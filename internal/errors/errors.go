// Package errors provides standardized error handling for the organizer.
// Every failure carries an ErrorKind so callers can branch on the failure
// category instead of a bare success/failure flag.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// SetupFailed covers fatal pre-walk problems: the target directory is
	// missing, not a directory, or its listing cannot be opened.
	SetupFailed
	// StatFailed marks a directory entry that could not be inspected.
	StatFailed
	// CategoryPathConflict means the category path exists but is not a directory.
	CategoryPathConflict
	// DirectoryCreateFailed means the category directory could not be created.
	DirectoryCreateFailed
	// NameSpaceExhausted means every disambiguated name up to the probe
	// bound was already taken.
	NameSpaceExhausted
	// MoveFailed means the rename itself failed.
	MoveFailed
	// InvalidConfig covers configuration problems such as bad rule globs.
	InvalidConfig
)

// OrganizeError is the error type for all organizer failures. It carries
// the affected path and an ErrorKind, optionally wrapping an underlying
// system error.
type OrganizeError struct {
	msg  string
	path string
	err  error
	kind ErrorKind
}

// NewOrganizeError creates a new organizer error
func NewOrganizeError(msg string, path string, kind ErrorKind, err error) *OrganizeError {
	return &OrganizeError{
		msg:  msg,
		path: path,
		err:  err,
		kind: kind,
	}
}

// Error returns the error message
func (e *OrganizeError) Error() string {
	switch {
	case e.path != "" && e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
	case e.path != "":
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	default:
		return e.msg
	}
}

// Unwrap returns the wrapped error
func (e *OrganizeError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *OrganizeError) Kind() ErrorKind {
	return e.kind
}

// Path returns the file path associated with the error
func (e *OrganizeError) Path() string {
	return e.path
}

// KindOf returns the kind of the first OrganizeError in err's chain,
// or Unknown if there is none.
func KindOf(err error) ErrorKind {
	var oe *OrganizeError
	if errors.As(err, &oe) {
		return oe.Kind()
	}
	return Unknown
}

// IsKind checks whether err carries the given error kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// New creates a new error with a message
func New(msg string) error {
	return &OrganizeError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &OrganizeError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &OrganizeError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &OrganizeError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}
