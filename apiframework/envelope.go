package apiframework

import (
	"encoding/json"
	"errors"
)

// Envelope is the uniform result of every tool call.
type Envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    any           `json:"data,omitempty"`
	Error   *ErrorDetails `json:"error,omitempty"`
}

// ErrorDetails is the "error" member of a failed envelope.
type ErrorDetails struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Operation string    `json:"operation,omitempty"`
	Status    int       `json:"status,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Upstream  any       `json:"upstream,omitempty"`
}

// Success builds a success envelope. data may be nil.
func Success(message string, data any) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Failure builds an error envelope from err.
func Failure(message string, err error) Envelope {
	if err == nil {
		err = ErrUnknown
	}
	details := &ErrorDetails{
		Kind:    KindOf(err),
		Message: err.Error(),
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		details.Field = validationErr.Field
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		details.Reason = ReasonOf(err)
		details.Operation = apiErr.Operation
		details.Status = apiErr.StatusCode
		if apiErr.Body != nil {
			details.Upstream = apiErr.Body
		} else if apiErr.Upstream != "" {
			details.Upstream = apiErr.Upstream
		}
	}

	return Envelope{
		Success: false,
		Message: message,
		Error:   details,
	}
}

// IsError reports whether the envelope must be flagged as an error response.
func (e Envelope) IsError() bool {
	return !e.Success
}

// JSON renders the envelope the way it is handed to the calling protocol.
func (e Envelope) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
