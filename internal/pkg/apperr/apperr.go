// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidInput
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error carries a taxonomy kind, a stable machine code and a human message.
// Retryable marks transient persistence failures that a caller may retry.
type Error struct {
	Kind      Kind
	Code      string
	Message   string
	Details   any
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind and code so sentinels work with errors.Is
// even after WithMessage or Wrap produced a copy.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// WithDetails returns a copy of e carrying structured details for the client.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NotFound(code, message string) *Error { return New(KindNotFound, code, message) }

func InvalidInput(code, message string) *Error { return New(KindInvalidInput, code, message) }

func Conflict(code, message string) *Error { return New(KindConflict, code, message) }

func Unauthorized(code, message string) *Error { return New(KindUnauthorized, code, message) }

func Forbidden(code, message string) *Error { return New(KindForbidden, code, message) }

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// Transient wraps a failure the persistence layer considers safe to retry.
func Transient(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "TEMPORARILY_UNAVAILABLE", Message: message, Err: err, Retryable: true}
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the taxonomy kind of err; unknown errors are Internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return err != nil && KindOf(err) == KindNotFound }

func IsInvalidInput(err error) bool { return err != nil && KindOf(err) == KindInvalidInput }

func IsConflict(err error) bool { return err != nil && KindOf(err) == KindConflict }

func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable
}
