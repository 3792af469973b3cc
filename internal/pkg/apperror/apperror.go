package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so controllers can map them to HTTP codes.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindValidation      Kind = "VALIDATION"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindTransactional   Kind = "TRANSACTIONAL"
	KindUnexpected      Kind = "UNEXPECTED"
)

type Error struct {
	Kind    Kind
	Message string
	// Errors carries the collected field errors for KindValidation.
	Errors []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation builds a KindValidation error carrying every collected field error.
func Validation(errs []string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Errors: errs}
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Transactional(message string, err error) *Error {
	return Wrap(KindTransactional, message, err)
}

// KindOf extracts the Kind from any error, defaulting to KindUnexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// FieldErrors returns the collected validation errors, if any.
func FieldErrors(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Errors
	}
	return nil
}

// StatusCode maps an error kind to its HTTP status by convention.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindUnauthenticated:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}
