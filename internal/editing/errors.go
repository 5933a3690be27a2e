// Package editing applies user edits to a résumé as structural replacements.
package editing

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned when an edit names a sequence that does not exist.
var ErrUnknownSection = errors.New("unknown section")

// ErrIDsExhausted is returned when no identifier at or below
// types.MaxEntryID is left for a new entry.
var ErrIDsExhausted = errors.New("entry identifiers exhausted")

// FieldError reports an edit addressed to a field that does not exist.
// Field contents are never validated, only field names.
type FieldError struct {
	Section string
	Field   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown field %q in section %q", e.Field, e.Section)
}

// InvalidEditError wraps a malformed edit request.
type InvalidEditError struct {
	Message string
	Cause   error
}

func (e *InvalidEditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid edit: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid edit: %s", e.Message)
}

func (e *InvalidEditError) Unwrap() error {
	return e.Cause
}
