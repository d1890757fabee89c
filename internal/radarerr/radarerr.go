// Package radarerr is bytes-radar's error taxonomy: a closed set of error
// kinds realized as a single tagged struct, the idiomatic Go translation of
// the original implementation's thiserror-derived AnalysisError enum
// (*fs.PathError and *net.OpError follow the same one-struct-plus-tag shape
// in the standard library).
package radarerr

import (
	"errors"
	"fmt"
)

// Kind is a closed tag identifying which class of failure occurred.
type Kind string

const (
	InvalidReference  Kind = "invalid_reference"
	NetworkError      Kind = "network_error"
	BranchAccessError Kind = "branch_access_error"
	AuthError         Kind = "auth_error"
	Timeout           Kind = "timeout"
	CorruptArchive    Kind = "corrupt_archive"
	LimitExceeded     Kind = "limit_exceeded"
	Cancelled         Kind = "cancelled"
)

// Error is the single error type bytes-radar returns across every
// component boundary. Candidates carries the list of URLs tried when Kind
// is BranchAccessError; Offset carries a position in the archive when Kind
// is CorruptArchive (archive.Reader reports the summed sizes of the entries
// read before the failure; header and padding bytes are not counted).
type Error struct {
	Kind       Kind
	Message    string
	Candidates []string
	Offset     *int64
	Cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == BranchAccessError && len(e.Candidates) > 0:
		return fmt.Sprintf("%s: %s (tried %d candidates)", e.Kind, e.Message, len(e.Candidates))
	case e.Kind == CorruptArchive && e.Offset != nil:
		return fmt.Sprintf("%s: %s (at offset %d)", e.Kind, e.Message, *e.Offset)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind that chains cause via errors.Unwrap.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithCandidates attaches the list of URLs tried before a BranchAccessError
// was raised.
func (e *Error) WithCandidates(candidates []string) *Error {
	e.Candidates = candidates
	return e
}

// WithOffset attaches a byte offset to a CorruptArchive error.
func (e *Error) WithOffset(offset int64) *Error {
	e.Offset = &offset
	return e
}

// Is reports whether err is a *Error of the given kind, unwrapping through
// any wrapping chain.
func Is(err error, kind Kind) bool {
	var target *Error
	if !errors.As(err, &target) {
		return false
	}
	return target.Kind == kind
}
