package apierr

import (
	"fmt"
	"net/http"
)

// Op names the public operation a failure belongs to. It selects the
// generic error code used when no specific classification applies.
type Op string

const (
	OpLookup Op = "lookup"
	OpSearch Op = "search"
	OpPhoto  Op = "photo"
)

// genericCode returns the catch-all code for an operation.
func genericCode(op Op) Code {
	switch op {
	case OpSearch:
		return CodeSearchError
	case OpPhoto:
		return CodePhotoError
	default:
		return CodeFetchError
	}
}

// Classify maps an upstream HTTP status to the internal taxonomy.
//
// Statuses without a specific mapping become the operation's generic
// code: 5xx collapses to 500, anything else passes its status through.
// The upstream message, when present, is used only as the underlying
// cause; the caller-facing message is always ours.
func Classify(op Op, status int, upstreamMessage string) *Error {
	var cause error
	if upstreamMessage != "" {
		cause = &upstreamError{status: status, message: upstreamMessage}
	}

	switch status {
	case http.StatusBadRequest:
		return Wrap(CodeInvalidRequest, http.StatusBadRequest, "upstream rejected the request", cause)
	case http.StatusUnauthorized:
		return Wrap(CodeAPIKeyRequired, http.StatusUnauthorized, "place data provider rejected the API key", cause)
	case http.StatusForbidden:
		return Wrap(CodeFetchForbidden, http.StatusForbidden, "place data provider refused the request", cause)
	case http.StatusNotFound:
		return Wrap(CodeNotFound, http.StatusNotFound, "place not found", cause)
	}

	returned := status
	if status >= http.StatusInternalServerError {
		returned = http.StatusInternalServerError
	}
	return Wrap(genericCode(op), returned, "place data provider request failed", cause)
}

// ClassifyTransport maps a network-level failure (no HTTP response at
// all, including timeouts) to the operation's generic code with 500.
func ClassifyTransport(op Op, err error) *Error {
	return Wrap(genericCode(op), http.StatusInternalServerError, "place data provider is unreachable", err)
}

// upstreamError preserves the raw upstream status and message for logs.
type upstreamError struct {
	status  int
	message string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.status, e.message)
}
