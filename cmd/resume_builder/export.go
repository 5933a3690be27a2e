package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/spf13/cobra"
)

var (
	exportInput     string
	exportOutput    string
	exportChrome    string
	exportNoSandbox bool
	exportTimeout   time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a résumé JSON file to a paginated A4 PDF",
	Long:  "Renders the résumé, captures it with headless Chrome and slices the capture across A4 pages.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Path to résumé JSON file (default: example résumé)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output PDF path or directory (default: CV_<name>_ATS.pdf in the current directory)")
	exportCmd.Flags().StringVar(&exportChrome, "chrome-path", "", "Chrome executable (default: found on PATH)")
	exportCmd.Flags().BoolVar(&exportNoSandbox, "no-sandbox", false, "Run Chrome without its sandbox")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 2*time.Minute, "Give up when Chrome and the export take longer than this")
	rootCmd.AddCommand(exportCmd)
}

// outputPath resolves --out: a directory receives the default file name.
// The default name comes from the résumé, so only its last element is used.
func outputPath(out, filename string) string {
	filename = filepath.Base(filename)
	if out == "" {
		return filename
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filename)
	}
	return out
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := resolveSettings(config.Config{ChromePath: exportChrome, ChromeNoSandbox: exportNoSandbox})
	if err != nil {
		return err
	}

	data, err := readResume(exportInput)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
	defer cancel()

	raster := export.NewChromeRasterizer(export.ChromeConfig{ExecPath: cfg.ChromePath, NoSandbox: cfg.ChromeNoSandbox})
	defer func() { _ = raster.Close() }()
	factory := export.NewPDFFactory()
	gate := export.NewGate(raster, factory)

	go func() { _ = gate.Run(ctx) }()
	if err := raster.Start(ctx); err != nil {
		return err
	}
	if err := gate.Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("PDF export did not become ready within %s", exportTimeout)
		}
		return err
	}

	result, err := export.NewPipeline(gate, raster, factory, logger).Export(ctx, data)
	if err != nil {
		return err
	}

	path := outputPath(exportOutput, result.Filename)
	if err := os.WriteFile(path, result.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintExport(result, path)
	}
	for _, v := range validation.CheckPageCount(result.Pages, validation.DefaultMaxPages) {
		logger.Warn().Str("type", v.Type).Msg(v.Details)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", path, result.Pages)
	return err
}
