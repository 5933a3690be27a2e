package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	rewriteInput  string
	rewriteTarget string
	rewriteOutput string
	rewriteAPIKey string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite the summary or an experience description with AI",
	Long:  "Asks the text-generation service for an ATS-friendly version of one field and writes the updated résumé JSON.",
	RunE:  runRewrite,
}

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteInput, "input", "i", "", "Path to résumé JSON file (default: example résumé)")
	rewriteCmd.Flags().StringVarP(&rewriteTarget, "target", "t", "summary", "Field to rewrite: summary or experience-<id>")
	rewriteCmd.Flags().StringVarP(&rewriteOutput, "out", "o", "", "Path to output résumé JSON file (default: stdout)")
	rewriteCmd.Flags().StringVar(&rewriteAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	target, err := rewriting.ParseTarget(rewriteTarget)
	if err != nil {
		return err
	}

	cfg, logger, err := resolveSettings(config.Config{APIKey: rewriteAPIKey})
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY or pass --api-key", rewriting.ErrUnavailable)
	}

	data, err := readResume(rewriteInput)
	if err != nil {
		return err
	}
	before, err := target.Text(data)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cmd.Context(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	// A throwaway session gives the orchestrator the same commit path as the server
	sessions := session.NewManager(session.Config{Seed: func() types.ResumeData { return data }})
	defer sessions.Stop()

	orchestrator := rewriting.NewOrchestrator(rewriting.NewRewriter(client, logger))
	updated, err := orchestrator.Run(cmd.Context(), sessions.Create(), target)
	if err != nil {
		return err
	}

	after, _ := target.Text(updated)
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRewrite(target.Key(), before, after)
	}

	out, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal résumé: %w", err)
	}
	out = append(out, '\n')

	if rewriteOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(rewriteOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write résumé: %w", err)
	}
	return nil
}
