package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Code identifies a class of API failure. Codes are stable strings safe to
// persist, log, and branch on.
type Code string

const (
	CodeAuthentication Code = "authentication_error"
	CodePermission     Code = "permission_error"
	CodeInvalidRequest Code = "invalid_request_error"
	CodeNotFound       Code = "not_found_error"
	CodeRateLimit      Code = "rate_limit_error"
	CodeAPI            Code = "api_error"
	CodeConnection     Code = "connection_error"
	CodeUnknown        Code = "unknown_error"
)

// Error is the single error type surfaced for every failed API call.
// StatusCode is 0 for failures that never produced an HTTP response
// (network errors, timeouts).
type Error struct {
	Code       Code
	StatusCode int
	Message    string
	// RawBody holds the upstream response body verbatim, when one was received.
	RawBody []byte
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("flowpay: %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("flowpay: %s: %s", e.Code, e.Message)
}

// Classify maps an HTTP status code to an error code. It is total over all
// integer inputs; unmapped statuses classify as CodeUnknown.
func Classify(status int) Code {
	switch {
	case status == 401:
		return CodeAuthentication
	case status == 403:
		return CodePermission
	case status == 400 || status == 422:
		return CodeInvalidRequest
	case status == 404:
		return CodeNotFound
	case status == 429:
		return CodeRateLimit
	case status == 0:
		return CodeConnection
	case status >= 500:
		return CodeAPI
	default:
		return CodeUnknown
	}
}

// Retryable reports whether a status code represents a transient condition
// worth retrying. Client errors other than 429 are deterministic; retrying
// them wastes the retry budget without changing the outcome.
func Retryable(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// errorBody is the upstream error response shape: {"error": "...", "details": ...}.
type errorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

// New builds an *Error for the given status and response body.
// Message resolution order: the explicit message argument, then the body's
// embedded error string, then a synthesized fallback.
func New(status int, body []byte, message string) *Error {
	if message == "" {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
			message = eb.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{
		Code:       Classify(status),
		StatusCode: status,
		Message:    message,
		RawBody:    body,
	}
}

// Connection builds a status-0 connection-class error for transport-level
// faults that never produced an HTTP response.
func Connection(message string) *Error {
	return &Error{
		Code:       CodeConnection,
		StatusCode: 0,
		Message:    message,
	}
}

// AsError extracts the *Error from an error chain, or nil when the chain
// contains none.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsCode reports whether err carries the given classification code.
func IsCode(err error, code Code) bool {
	if apiErr := AsError(err); apiErr != nil {
		return apiErr.Code == code
	}
	return false
}
