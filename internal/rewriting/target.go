package rewriting

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/types"
)

// Purpose selects the instruction template.
type Purpose string

const (
	PurposeSummary    Purpose = "summary"
	PurposeExperience Purpose = "experience"
)

// Target identifies the field a rewrite button is attached to: the summary,
// or the description of one experience entry.
type Target struct {
	Section string `json:"section" validate:"required,oneof=summary experience"`
	ID      int64  `json:"id,omitempty" validate:"required_if=Section experience,gte=0"`
}

var validate = validator.New()

// Validate checks the target shape.
func (t Target) Validate() error {
	return validate.Struct(t)
}

// Purpose returns the instruction template used for this target.
func (t Target) Purpose() Purpose {
	if t.Section == string(types.SectionExperience) {
		return PurposeExperience
	}
	return PurposeSummary
}

// Key identifies the button instance, e.g. "summary" or "experience-3".
func (t Target) Key() string {
	if t.Section == string(types.SectionExperience) {
		return fmt.Sprintf("experience-%d", t.ID)
	}
	return string(types.FieldSummary)
}

// ParseTarget parses a key produced by Target.Key.
func ParseTarget(key string) (Target, error) {
	if key == string(types.FieldSummary) {
		return Target{Section: key}, nil
	}
	rest, ok := strings.CutPrefix(key, "experience-")
	if !ok {
		return Target{}, fmt.Errorf("unknown rewrite target %q", key)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return Target{}, fmt.Errorf("invalid entry id in rewrite target %q: %w", key, err)
	}
	return Target{Section: string(types.SectionExperience), ID: id}, nil
}

// Text returns the current text of the target field.
func (t Target) Text(data types.ResumeData) (string, error) {
	if t.Purpose() == PurposeSummary {
		return data.Summary, nil
	}
	i := slices.IndexFunc(data.Experience, func(e types.Experience) bool { return e.ID == t.ID })
	if i < 0 {
		return "", ErrTargetNotFound
	}
	return data.Experience[i].Description, nil
}

// Apply commits a rewritten text to the target field.
func (t Target) Apply(data types.ResumeData, text string) (types.ResumeData, error) {
	if t.Purpose() == PurposeSummary {
		return editing.SetText(data, types.FieldSummary, text)
	}
	return editing.SetEntryField(data, types.SectionExperience, t.ID, editing.EntryDescription, text)
}
