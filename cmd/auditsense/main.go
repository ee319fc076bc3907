package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/auditsense/auditsense/internal/config"
	"github.com/auditsense/auditsense/internal/dashboard"
	"github.com/auditsense/auditsense/internal/extract"
	"github.com/auditsense/auditsense/internal/pdftext"
	"github.com/auditsense/auditsense/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	cfg.Version = version

	logger := newLogger(cfg)
	logger.Info().
		Str("version", version).
		Str("build_time", buildTime).
		Str("uploads_dir", cfg.UploadsDirectory).
		Msg("starting " + cfg.ServerName)
	if cfg.IsDebug() {
		logger.Debug().Str("config", cfg.String()).Msg("resolved configuration")
	}

	store := dashboard.NewStore()
	if cfg.SeedDemoData {
		dashboard.SeedDemoData(store)
		logger.Info().Int("audits", store.Snapshot().TotalAudits).Msg("seeded demonstration data")
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:          cfg.Address(),
		ServerName:    cfg.ServerName,
		UploadsDir:    cfg.UploadsDirectory,
		MaxUploadSize: cfg.MaxFileSize,
		Dependencies: server.Dependencies{
			Extractor: extract.NewService(logger),
			Store:     store,
			Validator: pdftext.NewValidator(cfg.MaxFileSize),
		},
	})

	if err := api.Start(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
