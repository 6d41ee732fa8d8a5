// Package server exposes table extraction over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ukaji3/tablenorm-go/internal/config"
	"github.com/ukaji3/tablenorm-go/pkg/tablenorm"
)

// Server serves the upload, calculate and health endpoints.
type Server struct {
	router          *chi.Mux
	log             *slog.Logger
	extractOptions  tablenorm.Options
	allowedOrigins  []string
	maxUploadBytes  int64
	shutdownTimeout time.Duration
}

// New creates a server from the application configuration.
func New(cfg *config.Config, log *slog.Logger) *Server {
	opts := tablenorm.DefaultOptions()
	opts.Spreadsheet = cfg.Extract.SpreadsheetEnabled
	opts.Logger = log

	s := &Server{
		router:          chi.NewRouter(),
		log:             log,
		extractOptions:  opts,
		allowedOrigins:  cfg.Server.AllowedOrigins,
		maxUploadBytes:  cfg.Server.MaxUploadBytes,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/upload", s.handleUpload)
	s.router.Post("/calculate", s.handleCalculate)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
