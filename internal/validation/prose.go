package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// proseField is one free-text field of a résumé with its location.
type proseField struct {
	section string
	entryID *int64
	field   string
	text    string
}

// proseFields lists every free-text field in display order.
func proseFields(data types.ResumeData) []proseField {
	fields := []proseField{{section: string(types.FieldSummary), text: data.Summary}}
	for _, e := range data.Experience {
		id := e.ID
		fields = append(fields, proseField{
			section: string(types.SectionExperience), entryID: &id, field: "description", text: e.Description,
		})
	}
	for _, e := range data.Education {
		id := e.ID
		fields = append(fields, proseField{
			section: string(types.SectionEducation), entryID: &id, field: "description", text: e.Description,
		})
	}
	return append(fields, proseField{section: string(types.FieldSkills), text: data.Skills})
}

func (f proseField) violation(kind, severity, details string) types.Violation {
	return types.Violation{
		Type:     kind,
		Severity: severity,
		Details:  details,
		Section:  f.section,
		EntryID:  f.entryID,
		Field:    f.field,
	}
}

// CheckLineLengths flags lines of free text longer than maxChars characters.
// Long unbroken paragraphs are hard to scan; bullets should stay short.
func CheckLineLengths(data types.ResumeData, maxChars int) []types.Violation {
	var violations []types.Violation
	for _, f := range proseFields(data) {
		for i, line := range strings.Split(f.text, "\n") {
			count := len([]rune(strings.TrimSpace(line)))
			if count > maxChars {
				violations = append(violations, f.violation("line_too_long", types.SeverityWarning,
					fmt.Sprintf("Line %d has %d characters, maximum is %d", i+1, count, maxChars)))
			}
		}
	}
	return violations
}

// CheckForbiddenPhrases flags free text containing any of phrases,
// case-insensitively. Each field reports its first match only.
func CheckForbiddenPhrases(data types.ResumeData, phrases []string) []types.Violation {
	if len(phrases) == 0 {
		return nil
	}

	var violations []types.Violation
	for _, f := range proseFields(data) {
		text := strings.ToLower(f.text)
		for _, phrase := range phrases {
			normalized := strings.ToLower(strings.TrimSpace(phrase))
			if normalized == "" {
				continue
			}
			if strings.Contains(text, normalized) {
				violations = append(violations, f.violation("forbidden_phrase", types.SeverityWarning,
					fmt.Sprintf("Contains filler phrase: %s", phrase)))
				break
			}
		}
	}
	return violations
}
