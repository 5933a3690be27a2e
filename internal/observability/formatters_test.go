package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := types.SeedResume()
	p.PrintResume(&data)
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "Ana García")
	assert.Contains(t, output, "Desarrolladora en Prácticas @ Innovatec Solutions")
	assert.Contains(t, output, "Grado en Ingeniería Informática")
	assert.Contains(t, output, "Skills:")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResume_ManyEntries(t *testing.T) {
	var buf bytes.Buffer
	data := types.ResumeData{}
	for i := 0; i < 8; i++ {
		data.Experience = append(data.Experience, types.Experience{ID: int64(i), Title: "Dev"})
	}

	NewPrinter(&buf).PrintResume(&data)
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintExport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExport(&export.Result{
		Filename: "CV_Ana_García_ATS.pdf",
		Pages:    2,
		Bytes:    make([]byte, 2048),
	}, "/tmp/out.pdf")
	output := buf.String()

	assert.Contains(t, output, "PDF EXPORT")
	assert.Contains(t, output, "CV_Ana_García_ATS.pdf")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "2.0 KiB")
}

func TestPrintRewrite(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRewrite("summary", "Antes", "")
	output := buf.String()

	assert.Contains(t, output, "AI REWRITE")
	assert.Contains(t, output, "Antes")
	assert.Contains(t, output, "(empty)")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", "short\n"+strings.Repeat("ñ", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "áé...", truncate("áéíóúü", 5))
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("€", 20), 10)))
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	id := int64(3)
	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{Type: "missing_field", Severity: types.SeverityError, Details: "Name is empty", Section: "personalInfo", Field: "name"},
		{Type: "line_too_long", Severity: types.SeverityWarning, Details: "Line 1 is long", Section: "experience", EntryID: &id, Field: "description"},
	}})
	output := buf.String()

	assert.Contains(t, output, "Found 2 problems")
	assert.Contains(t, output, "✗ missing_field personalInfo.name")
	assert.Contains(t, output, "⚠ line_too_long experience #3.description")
}

func TestPrintViolations_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(&types.Violations{})

	assert.Contains(t, buf.String(), "NO ATS PROBLEMS FOUND")
}
