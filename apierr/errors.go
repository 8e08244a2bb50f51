package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

// Error codes returned to callers.
const (
	CodeInvalidRequest    Code = "INVALID_REQUEST"
	CodeNotFound          Code = "NOT_FOUND"
	CodeAPIKeyRequired    Code = "API_KEY_REQUIRED"
	CodeFetchForbidden    Code = "FETCH_FORBIDDEN"
	CodeFetchError        Code = "FETCH_ERROR"
	CodeSearchError       Code = "SEARCH_ERROR"
	CodePhotoError        Code = "PHOTO_ERROR"
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"
)

// Error is a typed error with a stable code and an HTTP status.
//
// Contract:
// - Errors are classified exactly once at the upstream boundary and never
//   re-wrapped into another *Error further up the stack.
// - Message is safe to show to callers; raw upstream payloads never are.
type Error struct {
	Code    Code
	Status  int
	Message string

	// Details carries optional structured context (e.g. a validation
	// field). It is included in the JSON envelope when non-nil.
	Details map[string]any

	// Err is the underlying cause, for logs only.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates an error with the given code, status, and message.
func New(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap creates an error with an underlying cause attached.
func Wrap(code Code, status int, message string, err error) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// InvalidRequest builds a 400 INVALID_REQUEST error for a bad input field.
func InvalidRequest(message, field string) *Error {
	e := New(CodeInvalidRequest, http.StatusBadRequest, message)
	if field != "" {
		e.Details = map[string]any{"field": field}
	}
	return e
}

// APIKeyRequired is returned when the provider credential is not
// configured. Status 400: this is a server configuration problem surfaced
// before any upstream call is made.
func APIKeyRequired() *Error {
	return New(CodeAPIKeyRequired, http.StatusBadRequest, "place data provider API key is not configured")
}

// RateLimitExceeded builds the 429 error with a tier-specific retry hint.
func RateLimitExceeded(hint string) *Error {
	if hint == "" {
		hint = "too many requests, please try again later"
	}
	return New(CodeRateLimitExceeded, http.StatusTooManyRequests, hint)
}

// AsError extracts an *Error from err. Returns (nil, false) if err does
// not carry one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, defaulting to 500 for
// unclassified errors.
func StatusOf(err error) int {
	if e, ok := AsError(err); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}
