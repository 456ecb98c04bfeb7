package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest is returned when required fields are missing or malformed.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidCredentials is returned for both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrServerMisconfigured is returned when the token signing secret is not configured.
	ErrServerMisconfigured = errors.New("server configuration is incomplete")
	// ErrUnauthenticated is returned when a protected resource is requested without a session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken is returned when a session token fails signature, expiry or revocation checks.
	ErrInvalidToken = errors.New("invalid or expired session token")
	// ErrForbidden is returned when the session role may not use a resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write clashes with existing state.
	ErrConflict = errors.New("conflict")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are matched with
// errors.Is; only ErrInvalidRequest and ErrConflict carry their wrapped detail to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrServerMisconfigured):
		return NewHTTPError(http.StatusInternalServerError, ErrServerMisconfigured.Error(), "SERVER_MISCONFIGURED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// IsUnexpected reports whether err falls outside the known taxonomy and should be
// logged with full detail.
func IsUnexpected(err error) bool {
	return err != nil && MapErrorToHTTP(err).Code == "INTERNAL_ERROR"
}
