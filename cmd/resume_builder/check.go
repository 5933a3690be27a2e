package main

import (
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/spf13/cobra"
)

var (
	checkInput    string
	checkJSON     bool
	checkMaxChars int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a résumé for content ATS parsers handle poorly",
	Long:  "Reports missing contact details, overlong lines and filler phrases. Exits with an error when a problem of error severity is found.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkInput, "input", "i", "", "Path to résumé JSON file (default: example résumé)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the results as JSON")
	checkCmd.Flags().IntVar(&checkMaxChars, "max-chars", validation.DefaultMaxCharsPerLine, "Maximum characters per line of free text")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	data, err := readResume(checkInput)
	if err != nil {
		return err
	}

	result := validation.Validate(data, validation.Options{MaxCharsPerLine: checkMaxChars})

	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintViolations(result)
	}

	if result.HasErrors() {
		return errors.New("résumé has ATS problems that must be fixed")
	}
	return nil
}
