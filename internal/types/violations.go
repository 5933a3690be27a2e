package types

// Severity levels of a Violation.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation is one ATS readability problem found in a résumé.
type Violation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`

	// Where the problem is: a section or text field, optionally one entry
	// and one of its fields.
	Section string `json:"section,omitempty"`
	EntryID *int64 `json:"entryId,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Violations represents a collection of check results.
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity.
func (v *Violations) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
