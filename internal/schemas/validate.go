// Package schemas validates imported résumé documents against their JSON Schema.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	rootschemas "github.com/jonathan/resume-builder/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// ParseResume validates content against the résumé schema and decodes it.
// Entry identifiers must also be unique within each section.
func ParseResume(content []byte) (types.ResumeData, error) {
	if err := ValidateJSONString(rootschemas.Resume, string(content)); err != nil {
		return types.ResumeData{}, err
	}

	var data types.ResumeData
	if err := json.Unmarshal(content, &data); err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to decode résumé: %w", err)
	}

	if errs := duplicateIDs(data); len(errs) > 0 {
		return types.ResumeData{}, &ValidationError{Errors: errs}
	}
	return data, nil
}

// ParseResumeFile reads and validates a résumé JSON file.
func ParseResumeFile(path string) (types.ResumeData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ResumeData{}, fmt.Errorf("JSON file not found: %s", path)
		}
		return types.ResumeData{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseResume(content)
}

func duplicateIDs(data types.ResumeData) []FieldError {
	var errs []FieldError
	check := func(section string, ids []int64) {
		seen := make(map[int64]bool, len(ids))
		for i, id := range ids {
			if seen[id] {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("%s.%d.id", section, i),
					Message: fmt.Sprintf("duplicate id %d", id),
				})
			}
			seen[id] = true
		}
	}

	expIDs := make([]int64, len(data.Experience))
	for i, e := range data.Experience {
		expIDs[i] = e.ID
	}
	eduIDs := make([]int64, len(data.Education))
	for i, e := range data.Education {
		eduIDs[i] = e.ID
	}
	check("experience", expIDs)
	check("education", eduIDs)
	return errs
}
