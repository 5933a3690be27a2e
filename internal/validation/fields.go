package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/types"
)

var validate = validator.New()

func missing(section, field, details string) types.Violation {
	return types.Violation{
		Type:     "missing_field",
		Severity: types.SeverityError,
		Details:  details,
		Section:  section,
		Field:    field,
	}
}

// CheckRequiredFields flags content a parser needs to build a candidate
// record: a name, a way to get in touch and at least one experience entry.
func CheckRequiredFields(data types.ResumeData) []types.Violation {
	var violations []types.Violation
	info := data.PersonalInfo

	if strings.TrimSpace(info.Name) == "" {
		violations = append(violations, missing("personalInfo", "name", "Name is empty"))
	}
	if strings.TrimSpace(info.Email) == "" && strings.TrimSpace(info.Phone) == "" {
		violations = append(violations, missing("personalInfo", "email", "Neither email nor phone is set"))
	}
	if len(data.Experience) == 0 {
		violations = append(violations, missing(string(types.SectionExperience), "", "No experience entries"))
	}
	if strings.TrimSpace(data.Skills) == "" {
		violations = append(violations, types.Violation{
			Type:     "missing_field",
			Severity: types.SeverityWarning,
			Details:  "Skills are empty; keyword matching relies on them",
			Section:  string(types.FieldSkills),
		})
	}
	return violations
}

// CheckContact flags contact details a parser will not recognise.
func CheckContact(data types.ResumeData) []types.Violation {
	var violations []types.Violation
	info := data.PersonalInfo

	if email := strings.TrimSpace(info.Email); email != "" {
		if err := validate.Var(email, "email"); err != nil {
			violations = append(violations, types.Violation{
				Type:     "invalid_contact",
				Severity: types.SeverityWarning,
				Details:  fmt.Sprintf("Email %q is not a valid address", email),
				Section:  "personalInfo",
				Field:    "email",
			})
		}
	}
	return violations
}

// CheckPageCount flags an export longer than maxPages.
func CheckPageCount(pages, maxPages int) []types.Violation {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if pages <= maxPages {
		return nil
	}
	return []types.Violation{{
		Type:     "page_overflow",
		Severity: types.SeverityWarning,
		Details:  fmt.Sprintf("Résumé has %d pages, recommended maximum is %d", pages, maxPages),
	}}
}
