// Package apperr defines the error kinds the API layer maps to HTTP
// status codes. Internal detail stays in the wrapped cause and is only
// logged, never sent to clients.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation marks missing or malformed caller input.
	KindValidation Kind = iota
	// KindNotFound marks an unresolved movie or user identity.
	KindNotFound
	// KindDuplicateState marks a rejected duplicate transition, such as
	// adding a movie already on the watchlist.
	KindDuplicateState
	// KindUpstream marks store or LLM failures.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicateState:
		return "duplicate_state"
	case KindUpstream:
		return "upstream"
	}
	return "unknown"
}

// Error carries a kind, a client-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func DuplicateState(message string) error {
	return &Error{Kind: KindDuplicateState, Message: message}
}

func Upstream(message string, cause error) error {
	return &Error{Kind: KindUpstream, Message: message, cause: cause}
}

// KindOf extracts the kind from err, defaulting to KindUpstream for
// errors that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
