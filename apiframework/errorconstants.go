package apiframework

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds reported in error envelopes.
var (
	ErrValidation = errors.New("apiframework: validation failed")
	ErrTransport  = errors.New("apiframework: upstream request failed")
	ErrUnknown    = errors.New("apiframework: unknown error")
)

// Status-derived errors. An *APIError matches the one that fits its status code,
// so callers can write errors.Is(err, apiframework.ErrNotFound). Error envelopes
// report the match as "reason".
var (
	ErrBadRequest          = errors.New("apiframework: bad request")
	ErrUnauthorized        = errors.New("apiframework: unauthorized")
	ErrForbidden           = errors.New("apiframework: forbidden")
	ErrNotFound            = errors.New("apiframework: not found")
	ErrConflict            = errors.New("apiframework: conflict")
	ErrRateLimited         = errors.New("apiframework: rate limited")
	ErrInternalServerError = errors.New("apiframework: internal server error")
	ErrTimeout             = errors.New("apiframework: timeout")
)

// ErrorKind classifies a failure for the error envelope.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindUnknown    ErrorKind = "unknown"
)

// KindOf maps err onto the envelope taxonomy.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}

// ValidationError reports an argument that failed its schema before any
// upstream call was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid arguments: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidArgument creates a ValidationError for field.
func InvalidArgument(field, reason string, args ...any) *ValidationError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &ValidationError{Field: field, Reason: reason}
}

var reasons = []struct {
	err  error
	name string
}{
	{ErrBadRequest, "bad_request"},
	{ErrUnauthorized, "unauthorized"},
	{ErrForbidden, "forbidden"},
	{ErrNotFound, "not_found"},
	{ErrConflict, "conflict"},
	{ErrRateLimited, "rate_limited"},
	{ErrInternalServerError, "upstream_error"},
	{ErrTimeout, "timeout"},
}

// ReasonOf names the status-derived error err matches, or returns "".
func ReasonOf(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return ""
}

// statusError maps HTTP status codes to the status-derived errors.
func statusError(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrTimeout
	}
	if status >= 500 {
		return ErrInternalServerError
	}
	return nil
}
