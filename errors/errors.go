// Package errors defines the stable error kinds surfaced by the service
// and their mapping to HTTP statuses at the boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthenticated    = fmt.Errorf("authorization denied")
	ErrForbidden          = fmt.Errorf("not authorized")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrUserAlreadyExists  = fmt.Errorf("username or email already exists")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)

// HTTPStatus maps an error to the status code of the REST surface.
// Unknown errors are opaque server failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrMessageNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Is re-exports errors.Is so callers don't need both packages.
func Is(err, target error) bool { return errors.Is(err, target) }
