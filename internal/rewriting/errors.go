// Package rewriting asks the text-generation service for ATS-friendly
// rewrites of prose fields and tracks the status of each request.
package rewriting

import (
	"errors"
	"fmt"
)

// ErrUnavailable means no credential is configured; the feature is not offered.
var ErrUnavailable = errors.New("AI rewriting is not configured")

// ErrBusy is returned when a target already has a request outstanding.
var ErrBusy = errors.New("a rewrite for this field is already in progress")

// ErrTargetNotFound is returned when the target entry does not exist.
var ErrTargetNotFound = errors.New("rewrite target not found")

// serviceFailureMessage is what the user sees when the service call fails.
const serviceFailureMessage = "No se pudo obtener una sugerencia de la IA. Inténtalo de nuevo."

// ServiceError represents a failed call to the text-generation service.
// It is recoverable: invoking the rewrite again may succeed.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the human-readable text shown next to the field.
func UserMessage(err error) string {
	var svcErr *ServiceError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &svcErr):
		return svcErr.Message
	case errors.Is(err, ErrBusy):
		return "La IA ya está mejorando este campo."
	default:
		return "Ha ocurrido un error inesperado."
	}
}
