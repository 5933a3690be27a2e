// Package main provides the entry point for the ATS résumé builder.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "resume_builder",
	Short:        "ATS-friendly résumé builder",
	Long:         "Edit a résumé in the browser with a live preview, optional AI rewrites and a paginated A4 PDF export.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print summaries and debug logs")
}

// resolveSettings layers flags over env, the config file and defaults, and
// builds the process logger.
func resolveSettings(overrides config.Config) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Resolve(overrides, configFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
	return cfg, logger, nil
}

// readResume loads a résumé JSON file, or the seed résumé when path is empty.
func readResume(path string) (types.ResumeData, error) {
	if path == "" {
		return types.SeedResume(), nil
	}
	return schemas.ParseResumeFile(path)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
