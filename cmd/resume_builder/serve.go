package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr      string
	serveOrigins   []string
	serveChrome    string
	serveNoSandbox bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor web server",
	Long:  `Start an HTTP server that serves the editor page and the résumé API. A headless Chrome is launched in the background for PDF export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default \":8080\")")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "allowed-origin", nil, "CORS origin allowed to call the API (repeatable)")
	serveCmd.Flags().StringVar(&serveChrome, "chrome-path", "", "Chrome executable (default: found on PATH)")
	serveCmd.Flags().BoolVar(&serveNoSandbox, "no-sandbox", false, "Run Chrome without its sandbox (needed as root in containers)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := resolveSettings(config.Config{
		Addr:            serveAddr,
		AllowedOrigins:  serveOrigins,
		ChromePath:      serveChrome,
		ChromeNoSandbox: serveNoSandbox,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Text generation is optional: without a key the rewrite buttons are not offered
	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; AI rewriting is disabled")
	}
	rewrites := rewriting.NewOrchestrator(rewriting.NewRewriter(client, logger))

	raster := export.NewChromeRasterizer(export.ChromeConfig{ExecPath: cfg.ChromePath, NoSandbox: cfg.ChromeNoSandbox})
	defer func() { _ = raster.Close() }()
	factory := export.NewPDFFactory()
	gate := export.NewGate(raster, factory)

	sessions := session.NewManager(session.Config{
		IdleTimeout:     cfg.SessionIdle,
		CleanupInterval: 5 * time.Minute,
		NewTracker: func() *rewriting.Tracker {
			return rewriting.NewTracker(cfg.FailureWindow)
		},
	})

	srv, err := server.New(server.Config{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
		FailureWindow:  cfg.FailureWindow,
		RateLimit:      ratelimit.LoadConfig(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst),
		Sessions:       sessions,
		Rewrites:       rewrites,
		Exports:        export.NewPipeline(gate, raster, factory, logger),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		// A browser that fails to launch leaves the export gate closed;
		// editing keeps working.
		if err := raster.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("PDF export unavailable")
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		if err := gate.Run(gctx); err != nil {
			return ignoreCanceled(err)
		}
		logger.Info().Dur("after", time.Since(start)).Msg("PDF export ready")
		return nil
	})

	return g.Wait()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
