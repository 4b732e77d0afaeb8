// Package apperrors defines the domain error taxonomy and its mapping to
// HTTP status codes and response bodies.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when signing up with an already-registered email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned when no valid session is attached to a request.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrNotFound is returned when a lookup target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoFile is returned when an upload request carries no file part.
	ErrNoFile = errors.New("no file uploaded")
	// ErrFileTooLarge is returned when an upload exceeds the configured ceiling.
	ErrFileTooLarge = errors.New("file too large")
)

// FieldError describes a single violated validation constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors collapse
// to a generic 500 so no internal detail leaks to the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return &HTTPError{StatusCode: http.StatusConflict, Message: "User already exists"}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	case errors.Is(err, ErrUnauthenticated):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: "Not found"}
	case errors.Is(err, ErrNoFile):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "No file uploaded"}
	case errors.Is(err, ErrFileTooLarge):
		return &HTTPError{StatusCode: http.StatusRequestEntityTooLarge, Message: "File too large"}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal Server Error"}
	}
}
