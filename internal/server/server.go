package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/rs/zerolog"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	sessions       *session.Manager
	rewrites       *rewriting.Orchestrator
	exports        *export.Pipeline
	tokens         *TokenService
	rateLimiter    *ratelimit.Limiter
	allowedOrigins []string
	failureWindow  time.Duration
	index          *template.Template
	logger         zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Addr           string
	AllowedOrigins []string // empty allows any origin
	RateLimit      *ratelimit.Config
	Session        *config.SessionConfig
	FailureWindow  time.Duration // how long the page shows a rewrite error

	Sessions *session.Manager
	Rewrites *rewriting.Orchestrator
	Exports  *export.Pipeline
	Logger   zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Sessions == nil || cfg.Rewrites == nil || cfg.Exports == nil {
		return nil, fmt.Errorf("server requires sessions, rewrites and exports")
	}
	if cfg.FailureWindow <= 0 {
		cfg.FailureWindow = rewriting.DefaultFailureDisplayWindow
	}
	if cfg.Session == nil {
		sessionConfig, err := config.NewSessionConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create session config: %w", err)
		}
		cfg.Session = sessionConfig
	}

	index, err := loadIndex()
	if err != nil {
		return nil, err
	}

	s := &Server{
		sessions:       cfg.Sessions,
		rewrites:       cfg.Rewrites,
		exports:        cfg.Exports,
		tokens:         NewTokenService(cfg.Session),
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		allowedOrigins: cfg.AllowedOrigins,
		failureWindow:  cfg.FailureWindow,
		index:          index,
		logger:         cfg.Logger.With().Str("component", "server").Logger(),
	}
	if cfg.Session.Generated {
		s.logger.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /preview.css", s.handleStylesheet)
	mux.Handle("GET /static/", staticHandler())

	// Editor page and per-session API
	mux.Handle("GET /{$}", s.withSession(s.handleIndex))
	mux.Handle("GET /api/resume", s.withSession(s.handleGetResume))
	mux.Handle("PUT /api/resume", s.withSession(s.handleReplaceResume))
	mux.Handle("POST /api/resume/edits", s.withSession(s.handleEdit))
	mux.Handle("GET /api/preview", s.withSession(s.handlePreview))
	mux.Handle("GET /api/preview.txt", s.withSession(s.handlePreviewText))
	mux.Handle("GET /api/checks", s.withSession(s.handleChecks))
	mux.Handle("GET /api/status", s.withSession(s.handleStatus))
	mux.Handle("POST /api/rewrite", s.withSession(s.handleRewrite))
	mux.Handle("POST /api/export", s.withSession(s.handleExport))

	sessions := middleware.SessionMiddleware(s.tokens.AsTokenValidator(), SessionCookie)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(sessions(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for PDF exports
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info().Msg("server stopped")
	return nil
}

// Close stops the background goroutines owned by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.sessions.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.allowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		event := s.logger.Debug()
		if rec.status >= http.StatusInternalServerError {
			event = s.logger.Warn()
		}
		logging.Since(event, start).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Msg("request")
	})
}

// withSession resolves the caller's session, starting a new one when the
// request carries no valid token or its session has expired.
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *session.Session)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := middleware.GetSessionID(r); err == nil {
			if sess := s.sessions.Get(id); sess != nil {
				next(w, r, sess)
				return
			}
		}

		sess := s.sessions.Create()
		token, err := s.tokens.GenerateToken(sess.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to issue session token")
			s.errorResponse(w, http.StatusInternalServerError, "failed to start session")
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(s.tokens.Lifetime().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		s.logger.Debug().Str("session", sess.ID.String()).Msg("session started")

		r = r.WithContext(middleware.WithSessionID(r.Context(), sess.ID))
		next(w, r, sess)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps err onto a status and writes {"error": code, "message": text}.
func (s *Server) failResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	// Export stages log their own failures with the stage and session.
	var stageErr *export.StageError
	if status >= http.StatusInternalServerError && !errors.As(err, &stageErr) {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	s.jsonResponse(w, status, map[string]string{
		"error":   code,
		"message": userMessage(err, status),
	})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Demasiadas solicitudes. Inténtalo de nuevo más tarde.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		// Round up so clients never retry early
		seconds := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn().
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Str("reset", info.ResetTime.Format(time.RFC3339)).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// isJSON reports whether the request declares a JSON body.
func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/json")
}
