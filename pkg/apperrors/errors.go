// Package apperrors defines the closed error taxonomy surfaced to external
// callers (spec §7) and the sentinel values internal packages wrap.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the closed set of externally observable error categories.
type Kind string

// Error kinds, per spec §7.
const (
	KindInvalidInput     Kind = "InvalidInput"
	KindTemplateMissing  Kind = "TemplateMissing"
	KindLlmUnavailable   Kind = "LlmUnavailable"
	KindLlmBadResponse   Kind = "LlmBadResponse"
	KindParseFailure     Kind = "ParseFailure"
	KindSyntaxFailure    Kind = "SyntaxFailure"
	KindMissingHandler   Kind = "MissingHandler"
	KindForbiddenApi     Kind = "ForbiddenApi"
	KindQueueFull        Kind = "QueueFull"
	KindJobNotFound      Kind = "JobNotFound"
	KindCancelled        Kind = "Cancelled"
	KindInternal         Kind = "Internal"
)

// Error is the typed error every engine-facing failure is normalized into.
// It carries a Kind (for response mapping and logging) plus a human-readable
// message — never the raw payload that produced it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind, preserving cause for
// internal logging while never including cause text in Message.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// As extracts an *Error from err, if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, defaulting to KindInternal when err is not
// an *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Sentinel errors used internally for errors.Is comparisons where a Kind
// alone is insufficient context (e.g. scheduler/job-table lookups).
var (
	// ErrQueueFull indicates the scheduler's bounded queue is at capacity.
	ErrQueueFull = errors.New("queue full")

	// ErrJobNotFound indicates no job exists for the given identifier.
	ErrJobNotFound = errors.New("job not found")

	// ErrNotCancellable indicates a job is already in a terminal state.
	ErrNotCancellable = errors.New("job is not cancellable")
)
