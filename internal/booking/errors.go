package booking

import (
	"errors"
	"net/http"

	"github.com/la-masion/booking-api/internal/square"
)

// The error taxonomy mirrors how failures surface to callers:
// validation problems are the client's fault (400), missing external
// entities are 404-ish but reported as 400 to the booking UI, operator
// configuration gaps are 500, and provider failures are 502.

// ValidationError is malformed or missing input. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError is a missing or broken operator setting.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// NotFoundError is a missing external entity (location, team member,
// catalog variation).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func validationErrorf(msg string) error    { return &ValidationError{Message: msg} }
func configurationErrorf(msg string) error { return &ConfigurationError{Message: msg} }
func notFoundErrorf(msg string) error      { return &NotFoundError{Message: msg} }

// StatusForError maps an error to the HTTP status the JSON envelope carries.
func StatusForError(err error) int {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusBadRequest
	}
	var apiErr *square.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
