package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed request (empty query and the like).
	// Safe to retry after correcting the input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal signals a store failure or a malformed store response.
	ErrInternal = errors.New("internal error")
	// ErrPromptNotFound is returned by direct lookups; search never reports it.
	ErrPromptNotFound = errors.New("prompt not found")
)

// Kind is the reported error category at the search boundary.
type Kind string

const (
	// KindNone is reported for a nil error.
	KindNone Kind = ""
	// KindInvalidArgument is the caller's fault.
	KindInvalidArgument Kind = "invalid_argument"
	// KindInternal covers everything else.
	KindInternal Kind = "internal"
)

// KindOf classifies err. Errors that do not wrap ErrInvalidArgument are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
