// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable summary of a résumé.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", data.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", data.PersonalInfo.Title))
	sb.WriteString("\n")

	if len(data.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Title))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			sb.WriteString("\n")
		}
		if len(data.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(data.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(data.Education), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", data.Education[i].Degree))
		}
		if len(data.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Education)-3))
		}
		sb.WriteString("\n")
	}

	if data.Skills != "" {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", truncate(data.Skills, 40)))
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where a PDF was written and how many pages it has.
func (p *Printer) PrintExport(result *export.Result, path string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", result.Filename))
	sb.WriteString(fmt.Sprintf("Written:  %s\n", path))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", result.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %.1f KiB", float64(len(result.Bytes))/1024))

	p.printBox("PDF EXPORT", sb.String())
}

// PrintRewrite outputs a field before and after an AI rewrite.
func (p *Printer) PrintRewrite(target, before, after string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target: %s\n\n", target))
	sb.WriteString("Before:\n")
	sb.WriteString(fmt.Sprintf("  %s\n\n", truncate(before, 50)))
	sb.WriteString("After:\n")
	if after == "" {
		sb.WriteString("  (empty)")
	} else {
		sb.WriteString(fmt.Sprintf("  %s", truncate(after, 50)))
	}

	p.printBox("AI REWRITE", sb.String())
}

// PrintViolations outputs the ATS check results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ATS PROBLEMS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		marker := "⚠"
		if v.Severity == types.SeverityError {
			marker = "✗"
		}
		location := v.Section
		if v.EntryID != nil {
			location = fmt.Sprintf("%s #%d", location, *v.EntryID)
		}
		if v.Field != "" {
			location += "." + v.Field
		}

		sb.WriteString(fmt.Sprintf("%s %s %s\n", marker, v.Type, location))
		sb.WriteString(fmt.Sprintf("  %s\n", v.Details))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ATS CHECKS", sb.String())
}
