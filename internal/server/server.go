// Package server wires the extraction pipeline and dashboard store behind a
// small HTTP API for the browser client.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/auditsense/auditsense/internal/dashboard"
	"github.com/auditsense/auditsense/internal/extract"
	"github.com/auditsense/auditsense/internal/pdftext"
	"github.com/auditsense/auditsense/internal/server/middleware"
)

// WebAPI is the HTTP front of the audit dashboard.
type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// Dependencies are the pipeline components the API serves.
type Dependencies struct {
	Extractor *extract.Service
	Store     *dashboard.Store
	Validator *pdftext.Validator
}

// Config configures the web API.
type Config struct {
	Addr            string
	ServerName      string
	UploadsDir      string
	MaxUploadSize   int64
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// NewWebAPI builds the router and handlers.
func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	handler := NewHandler(
		config.Dependencies.Extractor,
		config.Dependencies.Store,
		config.Dependencies.Validator,
		config.ServerName,
		config.UploadsDir,
		config.MaxUploadSize,
	)

	router := chi.NewRouter()

	router.Use(middleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Post("/upload", handler.Upload)
		r.Get("/dashboard", handler.Dashboard)
		r.Get("/reports", handler.Reports)
		r.Get("/health", handler.Health)
	})

	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: config.ShutdownTimeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

// Router exposes the underlying handler, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

// Start runs the server until it fails or a shutdown signal arrives.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
