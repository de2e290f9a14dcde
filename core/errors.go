package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for classification.
var (
	ErrConfig     = errors.New("invalid configuration")
	ErrValidation = errors.New("invalid request")
	ErrEncode     = errors.New("encode error")
	ErrDecode     = errors.New("decode error")
	ErrNetwork    = errors.New("network error")
)

// Status-derived sentinels attached to APIError for errors.Is matching.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

// APIError represents a failed exchange with the Groq API. It covers both
// non-2xx responses and transport-level failures: Status is 0 when no HTTP
// response was ever obtained.
type APIError struct {
	Status  int    // HTTP status code, 0 if the server was never reached
	Message string // best-effort message extracted from the response
	Body    string // raw response body, empty if none
	Err     error  // wrapped sentinel or transport error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("groq: %s", e.Message)
	}
	return fmt.Sprintf("groq: %s (status=%d)", e.Message, e.Status)
}

// Unwrap returns the underlying error for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// statusSentinel maps an HTTP status code to a classification sentinel.
func statusSentinel(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if status >= 500 {
			return ErrServer
		}
		return ErrBadRequest
	}
}
