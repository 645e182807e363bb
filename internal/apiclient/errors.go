package apiclient

import "errors"

// ErrCode is a typed error code enum for consistent failure identification.
type ErrCode string

const (
	// ─── Transport ─────────────────────────────────────────────────────
	ErrCodeNetwork ErrCode = "NETWORK_ERROR"
	ErrCodeTimeout ErrCode = "REQUEST_TIMEOUT"

	// ─── Authentication / Authorization ────────────────────────────────
	ErrCodeUnauthorized ErrCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrCode = "FORBIDDEN"

	// ─── Request ───────────────────────────────────────────────────────
	ErrCodeValidation ErrCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrCode = "NOT_FOUND"
	ErrCodeConflict   ErrCode = "CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrCodeServer ErrCode = "SERVER_ERROR"
)

// GetMessage returns the generic human-readable message for a given error
// code, used when the backend did not supply one of its own.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrCodeNetwork:
		return "Network error - please check your connection"
	case ErrCodeTimeout:
		return "Request timeout - please try again"
	case ErrCodeUnauthorized:
		return "Your session has expired. Please log in again."
	case ErrCodeForbidden:
		return "You do not have permission to perform this action."
	case ErrCodeValidation:
		return "Validation failed. Please check your input."
	case ErrCodeNotFound:
		return "The requested resource was not found."
	case ErrCodeConflict:
		return "The resource already exists."
	case ErrCodeServer:
		return "Something went wrong on the server. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}

// APIError is the failure type returned by every client call. Status is
// zero for failures that never produced an HTTP response.
type APIError struct {
	Code    ErrCode
	Status  int
	Message string
	// Fields holds field-level validation messages when the backend
	// returned them.
	Fields map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// newError builds an APIError with the generic message for its code.
func newError(code ErrCode, status int) *APIError {
	return &APIError{Code: code, Status: status, Message: GetMessage(code)}
}

// ErrorMessage extracts the first available human-readable message from a
// failure: the backend-provided message when present, the generic fallback
// otherwise. Stores use this as their single current error string.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return "An unexpected error occurred."
}

// CodeOf returns the error code of a client failure, or an empty code for
// foreign errors.
func CodeOf(err error) ErrCode {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
