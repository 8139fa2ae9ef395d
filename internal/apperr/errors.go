package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors shared by every domain. Repositories and services wrap
// these with fmt.Errorf("...: %w", ...) so controllers can classify with
// errors.Is without inspecting message text.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
	ErrUnavailable     = errors.New("service unavailable")
	ErrTransient       = errors.New("transient failure")
)

// NotFound wraps ErrNotFound with a resource description.
func NotFound(resource string) error {
	return fmt.Errorf("%s: %w", resource, ErrNotFound)
}

// Invalid wraps ErrInvalidArgument with a reason.
func Invalid(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidArgument)
}

// Conflict wraps ErrConflict with a reason.
func Conflict(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

// InvalidState wraps ErrInvalidState with a reason.
func InvalidState(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidState)
}

// StatusCode maps a classified error to the HTTP status the API returns.
// Unclassified errors are treated as internal.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrTransient):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
