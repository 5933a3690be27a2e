// Package server provides the HTTP API and editor page of the résumé builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Error codes returned in the "error" field of JSON error bodies.
const (
	codeValidation   = "validation_failed"
	codeNotFound     = "not_found"
	codeBusy         = "busy"
	codeNotReady     = "export_not_ready"
	codeUnavailable  = "feature_unavailable"
	codeAIFailed     = "ai_service_failed"
	codeExportFailed = "export_failed"
	codeInternal     = "internal_error"
)

// classify maps err to its HTTP status and error code.
func classify(err error) (int, string) {
	var (
		validationErr *ErrValidation
		invalidEdit   *editing.InvalidEditError
		fieldErr      *editing.FieldError
		schemaErr     *schemas.ValidationError
		invalidInput  validator.ValidationErrors
		serviceErr    *rewriting.ServiceError
		stageErr      *export.StageError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &invalidEdit),
		errors.As(err, &fieldErr),
		errors.As(err, &schemaErr),
		errors.As(err, &invalidInput),
		errors.Is(err, editing.ErrUnknownSection),
		errors.Is(err, editing.ErrIDsExhausted):
		return http.StatusBadRequest, codeValidation
	case errors.Is(err, rewriting.ErrTargetNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, rewriting.ErrUnavailable):
		return http.StatusNotFound, codeUnavailable
	case errors.Is(err, rewriting.ErrBusy), errors.Is(err, session.ErrAlreadyGenerating):
		return http.StatusConflict, codeBusy
	case errors.Is(err, export.ErrNotReady):
		return http.StatusServiceUnavailable, codeNotReady
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway, codeAIFailed
	case errors.As(err, &stageErr):
		return http.StatusInternalServerError, codeExportFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// userMessage is the text shown to the user for err. Server-side failures
// are not described in detail.
func userMessage(err error, status int) string {
	var serviceErr *rewriting.ServiceError
	switch {
	case errors.As(err, &serviceErr), errors.Is(err, rewriting.ErrBusy):
		return rewriting.UserMessage(err)
	case errors.Is(err, session.ErrAlreadyGenerating):
		return "Ya se está generando un PDF."
	case errors.Is(err, export.ErrNotReady):
		return "El generador de PDF todavía se está cargando."
	case status >= http.StatusInternalServerError:
		return "Ha ocurrido un error inesperado."
	default:
		return err.Error()
	}
}
