package apiframework

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

const maxUpstreamBody = 1024

// APIError is the single error kind returned by the upstream clients. It carries
// the logical operation that was attempted, the request line, the HTTP status
// (zero when no response arrived) and whatever the upstream said about it.
type APIError struct {
	Operation  string
	Method     string
	Path       string
	StatusCode int
	// Upstream is the upstream error message, or a truncated raw body when the
	// body was not the usual {"error": "..."} document.
	Upstream string
	// Body is the decoded JSON error body, when there was one.
	Body any
	err  error
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed to %s", e.Operation)
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, ": upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Upstream != "" {
		fmt.Fprintf(&sb, ": %s", e.Upstream)
	} else if e.err != nil {
		fmt.Fprintf(&sb, ": %v", e.err)
	}
	return sb.String()
}

func (e *APIError) Unwrap() error {
	return e.err
}

func (e *APIError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	if e.StatusCode != 0 {
		return target == statusError(e.StatusCode)
	}
	return false
}

// HandleAPIError turns a non-2xx upstream response into an *APIError.
func HandleAPIError(operation string, resp *http.Response) *APIError {
	apiErr := &APIError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
	}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.Path = resp.Request.URL.RequestURI()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		apiErr.err = fmt.Errorf("status %s (failed to read response body: %w)", resp.Status, err)
		return apiErr
	}
	apiErr.err = fmt.Errorf("status %s", resp.Status)

	// TestRail reports failures as {"error": "Field :case_id is not a valid test case."}
	var errDoc struct {
		Error string `json:"error"`
	}
	if jsonErr := json.Unmarshal(body, &errDoc); jsonErr == nil && errDoc.Error != "" {
		apiErr.Upstream = errDoc.Error
		var decoded any
		if json.Unmarshal(body, &decoded) == nil {
			apiErr.Body = decoded
		}
		return apiErr
	}

	bodyStr := strings.TrimSpace(string(body))
	if len(bodyStr) > maxUpstreamBody {
		bodyStr = bodyStr[:maxUpstreamBody] + "..."
	}
	apiErr.Upstream = bodyStr
	return apiErr
}

// TransportFailure wraps an error that happened before a usable response
// arrived (request construction, network, timeout, undecodable body).
func TransportFailure(operation, method, path string, err error) *APIError {
	if isTimeout(err) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return &APIError{
		Operation: operation,
		Method:    method,
		Path:      path,
		err:       err,
	}
}

// DecodeFailure reports a 2xx response whose body could not be decoded.
func DecodeFailure(operation string, resp *http.Response, err error) *APIError {
	apiErr := &APIError{
		Operation: operation,
		err:       fmt.Errorf("decode response: %w", err),
	}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.Path = resp.Request.URL.RequestURI()
	}
	return apiErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
