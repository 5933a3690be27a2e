package editing

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/types"
)

// Op is the kind of change an Edit performs.
type Op string

const (
	OpSet    Op = "set"
	OpAdd    Op = "add"
	OpDelete Op = "delete"
)

// Edit is a single UI edit event addressed by section, entry id and field.
//
//	{"op":"set","section":"personalInfo","field":"name","value":"Ana"}
//	{"op":"set","section":"summary","value":"..."}
//	{"op":"set","section":"experience","id":3,"field":"title","value":"..."}
//	{"op":"add","section":"education"}
//	{"op":"delete","section":"experience","id":3}
type Edit struct {
	Op      Op     `json:"op" validate:"required,oneof=set add delete"`
	Section string `json:"section" validate:"required,oneof=personalInfo summary skills experience education"`
	ID      int64  `json:"id,omitempty" validate:"gte=0"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value"`
}

// Result describes what an applied edit produced.
type Result struct {
	// AddedID is the identifier of the entry created by an add edit.
	AddedID int64 `json:"addedId,omitempty"`
}

var validate = validator.New()

// Validate checks the shape of the edit. Values are never inspected.
func (e Edit) Validate() error {
	if err := validate.Struct(e); err != nil {
		return &InvalidEditError{Message: "malformed edit", Cause: err}
	}
	section := types.Section(e.Section)
	switch e.Op {
	case OpSet:
		if (e.Section == "personalInfo" || section.Valid()) && e.Field == "" {
			return &InvalidEditError{Message: "field is required for section " + e.Section}
		}
	case OpAdd, OpDelete:
		if !section.Valid() {
			return &InvalidEditError{Message: string(e.Op) + " only applies to experience or education"}
		}
	}
	return nil
}

// Apply dispatches one edit to the matching structural update.
// The input value is never modified.
func Apply(data types.ResumeData, e Edit, ids IDSource) (types.ResumeData, Result, error) {
	if err := e.Validate(); err != nil {
		return data, Result{}, err
	}

	switch e.Op {
	case OpAdd:
		next, id, err := AddEntry(data, types.Section(e.Section), ids)
		return next, Result{AddedID: id}, err
	case OpDelete:
		next, err := DeleteEntry(data, types.Section(e.Section), e.ID)
		return next, Result{}, err
	}

	if e.Section == "personalInfo" {
		next, err := SetPersonalInfo(data, e.Field, e.Value)
		return next, Result{}, err
	}
	if field := types.TextField(e.Section); field.Valid() {
		next, err := SetText(data, field, e.Value)
		return next, Result{}, err
	}
	next, err := SetEntryField(data, types.Section(e.Section), e.ID, e.Field, e.Value)
	return next, Result{}, err
}
