// Package server exposes scenarios, planning and exports over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deepspace-navigator/internal/export"
	"deepspace-navigator/internal/planner"
	"deepspace-navigator/internal/scenario"
)

const requestIDHeader = "X-Request-ID"

// Options wires a Server. Repository and Planner are required; a nil
// Exporter disables POST /export.
type Options struct {
	Repository  *scenario.Repository
	Planner     *planner.Planner
	Exporter    *export.Exporter
	Logger      *slog.Logger
	CORSOrigins []string
}

// Server holds the HTTP handlers. It keeps no per-request state.
type Server struct {
	repo     *scenario.Repository
	planner  *planner.Planner
	exporter *export.Exporter
	logger   *slog.Logger
	origins  map[string]bool
	anyOrig  bool
	router   *gin.Engine
}

// New builds the router
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		repo:     opts.Repository,
		planner:  opts.Planner,
		exporter: opts.Exporter,
		logger:   logger,
		origins:  make(map[string]bool),
	}
	for _, o := range opts.CORSOrigins {
		if o == "*" {
			s.anyOrig = true
		}
		s.origins[o] = true
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestMiddleware(), s.corsMiddleware())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/scenarios", s.handleListScenarios)
	r.GET("/scenarios/:group/:number", s.handleGetScenario)
	r.POST("/plan", s.handlePlan)
	r.POST("/export", s.handleExport)

	s.router = r
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// requestMiddleware assigns a request ID, logs one line per request and
// counts it
func (s *Server) requestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		httpRequests.WithLabelValues(c.Request.Method, route, fmt.Sprint(status)).Inc()
		s.logger.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"elapsed", time.Since(start),
		)
	}
}

// corsMiddleware adds CORS headers to allow frontend requests
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case s.anyOrig:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && s.origins[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, "+requestIDHeader)

		// Handle preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
