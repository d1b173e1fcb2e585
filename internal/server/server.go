// Package server assembles the back-office HTTP API: routing, request
// logging, health and metrics endpoints, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"restaurant-backoffice/internal/config"
	"restaurant-backoffice/internal/httpx"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/metrics"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 10 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Routes mounts a group of handlers on the mux
type Routes interface {
	Register(mux *http.ServeMux)
}

// Server is the back-office HTTP API
type Server struct {
	cfg    config.AppConfig
	db     Pinger
	logger *logger.Logger
	http   *http.Server
}

// New builds the server and its routing table
func New(cfg config.AppConfig, db Pinger, log *logger.Logger, routes ...Routes) *Server {
	s := &Server{cfg: cfg, db: db, logger: log}

	mux := http.NewServeMux()
	for _, r := range routes {
		r.Register(mux)
	}
	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           s.withLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("service_started", fmt.Sprintf("Back office API listening on %s", s.http.Addr), "", map[string]interface{}{
			"port": s.cfg.HTTPPort,
		})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("graceful_shutdown", "Stopping HTTP server", "", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	status := "ok"
	code := http.StatusOK
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Warn("health_check_failed", "Database ping failed", requestID, map[string]interface{}{
			"error": err.Error(),
		})
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	httpx.WriteJSON(w, code, status, map[string]interface{}{
		"service":   s.cfg.Name,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"healthy":   code == http.StatusOK,
	})
}

// withLogging assigns a request id, applies the request timeout, and
// records every finished request in the log and in metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(httpx.RequestIDHeader)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(httpx.RequestIDHeader, requestID)

		ctx := httpx.WithRequestID(r.Context(), requestID)
		if s.cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
			defer cancel()
		}
		req := r.WithContext(ctx)

		s.logger.Debug("request_started", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.Header.Get("User-Agent"),
		})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, req)

		// The mux records the matched pattern on the request it was given.
		pattern := req.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		duration := time.Since(start)
		metrics.ObserveHTTP(r.Method, pattern, rw.statusCode, duration)

		s.logger.Debug("request_completed", fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode), requestID, map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rw.statusCode,
			"duration_ms": duration.Milliseconds(),
		})
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
