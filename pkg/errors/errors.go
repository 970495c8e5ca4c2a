// Package errors carries the error taxonomy shared by the services and
// the HTTP layer. Services attach a Code when they fail; the response
// writer maps the code to a status and decides how much of the failure
// the client gets to see.
package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code identifies a failure class. Codes are stable wire values.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeIdempotency   Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata drives how the HTTP layer renders a code. DetailsAllowed
// gates whether structured details attached by the service may leave
// the process.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed", DetailsAllowed: true},
	CodeUnauthorized:  {HTTPStatus: http.StatusUnauthorized, PublicMessage: "authentication required"},
	CodeForbidden:     {HTTPStatus: http.StatusForbidden, PublicMessage: "access denied"},
	CodeNotFound:      {HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found"},
	CodeConflict:      {HTTPStatus: http.StatusConflict, PublicMessage: "conflict detected"},
	CodeStateConflict: {HTTPStatus: http.StatusUnprocessableEntity, PublicMessage: "state transition disallowed", DetailsAllowed: true},
	CodeIdempotency:   {HTTPStatus: http.StatusConflict, PublicMessage: "idempotency key reused", DetailsAllowed: true},
	CodeRateLimit:     {HTTPStatus: http.StatusTooManyRequests, PublicMessage: "rate limit exceeded"},
	CodeInternal:      {HTTPStatus: http.StatusInternalServerError, PublicMessage: "internal server error", Retryable: true},
	CodeDependency:    {HTTPStatus: http.StatusServiceUnavailable, PublicMessage: "dependency unavailable", Retryable: true, DetailsAllowed: true},
}

// MetadataFor resolves the rendering metadata for a code. Unknown codes
// fall back to the internal error row so a typo can never leak details.
func MetadataFor(code Code) Metadata {
	meta, ok := metadataByCode[code]
	if !ok {
		return metadataByCode[CodeInternal]
	}
	return meta
}

// Error is a classified failure with an optional cause and optional
// structured details for the client.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

// New builds a classified error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap classifies an underlying error. A nil cause degrades to New.
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// As extracts the classified error from a chain, or nil when absent.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if !stdErrors.As(err, &typed) {
		return nil
	}
	return typed
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails attaches structured details. They only reach the client
// when the code's metadata allows it.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}
