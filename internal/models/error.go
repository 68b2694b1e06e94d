package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Auth errors
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrInvalidToken       = "INVALID_TOKEN"

	// Rating errors
	ErrRatingExists   = "RATING_ALREADY_EXISTS"
	ErrRatingNotFound = "RATING_NOT_FOUND"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, fieldErrors ...map[string]string) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(fieldErrors) > 0 && len(fieldErrors[0]) > 0 {
		err.Errors = fieldErrors[0]
	}
	return err
}

// MessageResponse is the body of successful mutations
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse is the body of the admin counters
type CountResponse struct {
	Count int64 `json:"count"`
}
