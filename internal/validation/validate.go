// Package validation checks a résumé for content that applicant tracking
// systems parse poorly.
package validation

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Default limits used when Options leaves them zero.
const (
	DefaultMaxCharsPerLine = 300
	DefaultMaxPages        = 2
)

// DefaultForbiddenPhrases are filler phrases recruiters and keyword filters
// ignore.
var DefaultForbiddenPhrases = []string{
	"proactivo",
	"dinámico",
	"orientado a resultados",
	"trabajo bajo presión",
	"don de gentes",
	"team player",
}

// Options tunes the checks. Zero values fall back to the defaults.
type Options struct {
	MaxCharsPerLine  int
	ForbiddenPhrases []string
}

func (o Options) withDefaults() Options {
	if o.MaxCharsPerLine <= 0 {
		o.MaxCharsPerLine = DefaultMaxCharsPerLine
	}
	if o.ForbiddenPhrases == nil {
		o.ForbiddenPhrases = DefaultForbiddenPhrases
	}
	return o
}

// Validate runs every content check against data. Page count needs a
// rendered export and is checked separately with CheckPageCount.
func Validate(data types.ResumeData, opts Options) *types.Violations {
	opts = opts.withDefaults()

	var all []types.Violation
	all = append(all, CheckRequiredFields(data)...)
	all = append(all, CheckContact(data)...)
	all = append(all, CheckLineLengths(data, opts.MaxCharsPerLine)...)
	all = append(all, CheckForbiddenPhrases(data, opts.ForbiddenPhrases)...)

	if all == nil {
		all = []types.Violation{}
	}
	return &types.Violations{Violations: all}
}
