package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "body", Message: "invalid JSON"}
	assert.Equal(t, "validation error: body - invalid JSON", err.Error())
	status, code := classify(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, codeValidation, code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "id"},
			expected: http.StatusBadRequest,
			code:     codeValidation,
		},
		{
			name:     "invalid edit",
			err:      &editing.InvalidEditError{Message: "malformed edit"},
			expected: http.StatusBadRequest,
			code:     codeValidation,
		},
		{
			name:     "unknown field",
			err:      &editing.FieldError{Section: "personalInfo", Field: "twitter"},
			expected: http.StatusBadRequest,
			code:     codeValidation,
		},
		{
			name:     "unknown section",
			err:      fmt.Errorf("apply: %w", editing.ErrUnknownSection),
			expected: http.StatusBadRequest,
			code:     codeValidation,
		},
		{
			name:     "schema violation",
			err:      &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "summary"}}},
			expected: http.StatusBadRequest,
			code:     codeValidation,
		},
		{
			name:     "struct validation",
			err:      validator.ValidationErrors{},
			expected: http.StatusBadRequest,
			code:     codeValidation,
		},
		{
			name:     "rewrite target missing",
			err:      rewriting.ErrTargetNotFound,
			expected: http.StatusNotFound,
			code:     codeNotFound,
		},
		{
			name:     "AI unavailable",
			err:      rewriting.ErrUnavailable,
			expected: http.StatusNotFound,
			code:     codeUnavailable,
		},
		{
			name:     "rewrite busy",
			err:      rewriting.ErrBusy,
			expected: http.StatusConflict,
			code:     codeBusy,
		},
		{
			name:     "export busy",
			err:      session.ErrAlreadyGenerating,
			expected: http.StatusConflict,
			code:     codeBusy,
		},
		{
			name:     "export not ready",
			err:      export.ErrNotReady,
			expected: http.StatusServiceUnavailable,
			code:     codeNotReady,
		},
		{
			name:     "AI service failure",
			err:      &rewriting.ServiceError{Message: "boom", Cause: errors.New("timeout")},
			expected: http.StatusBadGateway,
			code:     codeAIFailed,
		},
		{
			name:     "export stage failure",
			err:      &export.StageError{Stage: export.StageCapture, Cause: errors.New("chrome crashed")},
			expected: http.StatusInternalServerError,
			code:     codeExportFailed,
		},
		{
			name:     "unknown error",
			err:      errors.New("generic error"),
			expected: http.StatusInternalServerError,
			code:     codeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classify(tt.err)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestUserMessage(t *testing.T) {
	svc := &rewriting.ServiceError{Message: "No se pudo obtener una sugerencia de la IA. Inténtalo de nuevo."}
	assert.Equal(t, svc.Message, userMessage(svc, http.StatusBadGateway))

	internal := errors.New("template exploded at line 3")
	assert.Equal(t, "Ha ocurrido un error inesperado.", userMessage(internal, http.StatusInternalServerError))

	invalid := &ErrValidation{Field: "body", Message: "invalid JSON"}
	assert.Equal(t, invalid.Error(), userMessage(invalid, http.StatusBadRequest))
}
