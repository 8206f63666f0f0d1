package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable kind of a domain error.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeConversion   ErrorCode = "CONVERSION"
	CodeIO           ErrorCode = "IO"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeInternal     ErrorCode = "INTERNAL"
)

// HTTPStatus returns the status code a handler should answer with.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeConversion:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an expected, recoverable failure with a human-readable message.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
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

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrForbidden    = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrConflict     = &Error{Code: CodeConflict, Message: "conflict"}
	ErrConversion   = &Error{Code: CodeConversion, Message: "conversion failed"}
	ErrIO           = &Error{Code: CodeIO, Message: "i/o error"}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

func ValidationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func ForbiddenError(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func UnauthorizedError(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func ConflictError(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// ConversionError keeps the engine's failure as the cause so the message reads
// "<msg>: <engine error>".
func ConversionError(msg string, cause error) *Error {
	return &Error{Code: CodeConversion, Message: msg, cause: cause}
}

func IOError(msg string, cause error) *Error {
	return &Error{Code: CodeIO, Message: msg, cause: cause}
}

func NotFoundError(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func InternalError(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, cause: cause}
}

// CodeOf reports the code of err, or CodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
