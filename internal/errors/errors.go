package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidEmail is returned when an email does not match local-part@domain.tld.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrNameRequired is returned when a user name is empty.
	ErrNameRequired = errors.New("name is required")
	// ErrStoreUnavailable is returned when the backing store cannot be read or parsed.
	ErrStoreUnavailable = errors.New("user store unavailable")
)

// internalMessage is the only detail a client sees for storage and unexpected failures.
const internalMessage = "Internal server error"

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidEmail):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidEmail.Error(), "INVALID_EMAIL")
	case errors.Is(err, ErrNameRequired):
		return NewHTTPError(http.StatusBadRequest, ErrNameRequired.Error(), "NAME_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, internalMessage, "INTERNAL_ERROR")
	}
}
