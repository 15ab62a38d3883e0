// Package server exposes level generation over HTTP.
//
// Routes:
//
//	GET  /healthz                     liveness probe
//	GET  /v1/blueprints               names of the served blueprints
//	GET  /v1/blueprints/{name}/tree   generator tree as DOT, or SVG with ?format=svg
//	POST /v1/levels                   generate a level
//
// A level request names a served blueprint or carries one inline:
//
//	{"blueprint": "crypt.toml", "seed": 7, "formats": ["ascii"]}
//	{"source": "name = \"room\"\n[generator]\n...", "format": "toml", "width": 20}
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/levelgen/internal/config"
	"github.com/matzehuels/levelgen/pkg/pipeline"
)

// Config holds the server's dependencies.
type Config struct {
	Runner   *pipeline.Runner
	Registry *Registry
	Logger   *log.Logger
	HTTP     config.ServerConfig
	// Watch reloads the registry when blueprint files change.
	Watch bool
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	registry *Registry
	logger   *log.Logger
	cfg      config.ServerConfig
	watch    bool
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.HTTP.MaxBodyBytes <= 0 {
		cfg.HTTP.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	return &Server{
		runner:   cfg.Runner,
		registry: cfg.Registry,
		logger:   cfg.Logger,
		cfg:      cfg.HTTP,
		watch:    cfg.Watch,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.observe,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/blueprints", s.handleListBlueprints)
		r.Get("/blueprints/*", s.handleTree)
		r.Post("/levels", s.handleCreateLevel)
	})
	return r
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	if s.watch {
		eg.Go(func() error {
			return s.registry.Watch(egctx)
		})
	}

	eg.Go(func() error {
		s.logger.Info("serving", "addr", ln.Addr().String(), "blueprints", len(s.registry.Names()))
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
