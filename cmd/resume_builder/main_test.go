package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configFile, verbose = "", false
		previewInput, previewOutput, previewText = "", "", false
		rewriteInput, rewriteTarget, rewriteOutput, rewriteAPIKey = "", "summary", "", ""
		checkInput, checkJSON, checkMaxChars = "", false, validation.DefaultMaxCharsPerLine
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPreview_HTML(t *testing.T) {
	out, err := execute(t, "preview")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Ana García")
}

func TestPreview_TextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")

	_, err := execute(t, "preview", "--text", "--out", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Ana García")
	assert.NotContains(t, string(content), "<")
}

func TestPreview_InvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"personalInfo": 3}`), 0o644))

	_, err := execute(t, "preview", "--input", path)
	assert.Error(t, err)
}

func TestRewrite_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := execute(t, "rewrite", "--target", "summary")
	assert.ErrorIs(t, err, rewriting.ErrUnavailable)
}

func TestRewrite_RejectsUnknownTarget(t *testing.T) {
	_, err := execute(t, "rewrite", "--target", "skills")
	assert.Error(t, err)
}

func TestCheck_SeedPasses(t *testing.T) {
	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "forbidden_phrase")
}

func TestCheck_ErrorsFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	content := `{"personalInfo": {}, "summary": "", "experience": [], "education": [], "skills": ""}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "check", "--json", "--input", path)
	assert.Error(t, err)
	assert.Contains(t, out, `"missing_field"`)
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "CV_Ana_ATS.pdf", outputPath("", "CV_Ana_ATS.pdf"))
	assert.Equal(t, filepath.Join(dir, "CV_Ana_ATS.pdf"), outputPath(dir, "CV_Ana_ATS.pdf"))
	assert.Equal(t, filepath.Join(dir, "mine.pdf"), outputPath(filepath.Join(dir, "mine.pdf"), "CV_Ana_ATS.pdf"))
}

func TestOutputPath_NameCannotEscapeDirectory(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "x_ATS.pdf", outputPath("", "CV_../../x_ATS.pdf"))
	assert.Equal(t, "b_ATS.pdf", outputPath("", "CV_a/b_ATS.pdf"))
	assert.Equal(t, filepath.Join(dir, "etc_ATS.pdf"), outputPath(dir, "CV_/etc_ATS.pdf"))
}
