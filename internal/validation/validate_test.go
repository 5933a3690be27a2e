package validation

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byType(violations []types.Violation, kind string) []types.Violation {
	var out []types.Violation
	for _, v := range violations {
		if v.Type == kind {
			out = append(out, v)
		}
	}
	return out
}

func TestValidate_SeedResume(t *testing.T) {
	result := Validate(types.SeedResume(), Options{})

	require.NotNil(t, result)
	assert.False(t, result.HasErrors())
	phrases := byType(result.Violations, "forbidden_phrase")
	require.Len(t, phrases, 1)
	assert.Equal(t, "summary", phrases[0].Section)
	assert.Contains(t, phrases[0].Details, "dinámico")
}

func TestValidate_EmptyResume(t *testing.T) {
	result := Validate(types.ResumeData{}, Options{})

	assert.True(t, result.HasErrors())
	missing := byType(result.Violations, "missing_field")
	assert.Len(t, missing, 4)
}

func TestValidate_NeverNil(t *testing.T) {
	data := types.SeedResume()
	data.Summary = "Desarrolladora web."

	result := Validate(data, Options{ForbiddenPhrases: []string{}})
	assert.NotNil(t, result.Violations)
	assert.Empty(t, result.Violations)
}

func TestCheckLineLengths(t *testing.T) {
	data := types.ResumeData{
		Summary: "corta",
		Experience: []types.Experience{
			{ID: 7, Description: "línea corta\n" + strings.Repeat("á", 31)},
		},
	}

	violations := CheckLineLengths(data, 30)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, "line_too_long", v.Type)
	assert.Equal(t, types.SeverityWarning, v.Severity)
	assert.Equal(t, "experience", v.Section)
	require.NotNil(t, v.EntryID)
	assert.Equal(t, int64(7), *v.EntryID)
	assert.Equal(t, "description", v.Field)
	assert.Equal(t, "Line 2 has 31 characters, maximum is 30", v.Details)
}

func TestCheckForbiddenPhrases(t *testing.T) {
	data := types.ResumeData{
		Summary: "Profesional PROACTIVO y dinámico.",
		Skills:  "Go, SQL",
	}

	violations := CheckForbiddenPhrases(data, []string{"  ", "proactivo", "dinámico"})
	require.Len(t, violations, 1, "one report per field")
	assert.Equal(t, "summary", violations[0].Section)
	assert.Contains(t, violations[0].Details, "proactivo")

	assert.Empty(t, CheckForbiddenPhrases(data, nil))
}

func TestCheckRequiredFields_PhoneIsEnoughContact(t *testing.T) {
	data := types.SeedResume()
	data.PersonalInfo.Email = ""

	assert.Empty(t, CheckRequiredFields(data))
}

func TestCheckContact(t *testing.T) {
	data := types.SeedResume()
	assert.Empty(t, CheckContact(data))

	data.PersonalInfo.Email = "ana at email"
	violations := CheckContact(data)
	require.Len(t, violations, 1)
	assert.Equal(t, "invalid_contact", violations[0].Type)
	assert.Equal(t, "email", violations[0].Field)
}

func TestCheckPageCount(t *testing.T) {
	assert.Empty(t, CheckPageCount(2, 0))

	violations := CheckPageCount(3, 2)
	require.Len(t, violations, 1)
	assert.Equal(t, "page_overflow", violations[0].Type)
}
