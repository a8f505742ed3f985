package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so callers can branch without string
// matching. Everything except KindStorage is an expected, user-correctable
// outcome.
type Kind string

const (
	// KindValidation covers malformed or missing input.
	KindValidation Kind = "VALIDATION"
	// KindStateGate covers mutations blocked by a non-ACTIVE project.
	KindStateGate Kind = "STATE_GATE"
	// KindAuthorization covers role and ownership denials.
	KindAuthorization Kind = "AUTHORIZATION"
	// KindIntegrity covers references to entities that do not exist.
	KindIntegrity Kind = "INTEGRITY"
	// KindStorage covers persistence I/O faults.
	KindStorage Kind = "STORAGE"
	// KindNoSession covers mutating calls made without an acting identity.
	KindNoSession Kind = "NO_SESSION"
)

// Error is the single error type crossing the repository boundary.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func StateGate(message string) *Error {
	return New(KindStateGate, message)
}

func Authorization(message string) *Error {
	return New(KindAuthorization, message)
}

func Integrity(message string) *Error {
	return New(KindIntegrity, message)
}

// Storage wraps an underlying persistence failure.
func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, cause: cause}
}

// ErrNoSession is returned by every mutating call made without a session.
var ErrNoSession = New(KindNoSession, "no active session")

// KindOf extracts the Kind from an error chain, or "" for foreign errors.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
