package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	previewInput  string
	previewOutput string
	previewText   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the preview of a résumé JSON file",
	Long:  "Renders the résumé as a standalone HTML page, or with --text as the plain text an ATS parser would extract.",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "input", "i", "", "Path to résumé JSON file (default: example résumé)")
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Output file (default: stdout)")
	previewCmd.Flags().BoolVar(&previewText, "text", false, "Output the extracted plain text instead of HTML")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	data, err := readResume(previewInput)
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResume(&data)
	}

	doc := rendering.Project(data)

	var out string
	if previewText {
		fragment, err := rendering.RenderFragment(doc)
		if err != nil {
			return err
		}
		out, err = rendering.PlainText(fragment)
		if err != nil {
			return err
		}
	} else {
		out, err = rendering.RenderStandalone(doc)
		if err != nil {
			return err
		}
	}

	if previewOutput == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(previewOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
