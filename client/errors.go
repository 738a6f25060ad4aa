package client

import (
	"encoding/json"
	"fmt"
)

// APIError represents a structured error response from the VG core API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("vgcore: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}

	return fmt.Sprintf("vgcore: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsSafetyLimit returns true if the error is a 413 safety-limit rejection.
func IsSafetyLimit(err error) bool {
	e, ok := err.(*APIError)

	return ok && e.StatusCode == 413
}

// IsTimeout returns true if the error is a 504 query timeout.
func IsTimeout(err error) bool {
	e, ok := err.(*APIError)

	return ok && e.StatusCode == 504
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}

	return apiErr
}
