package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"research-portfolio/internal/app"
	"research-portfolio/internal/config"
	"research-portfolio/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API serves a researcher's paper portfolio: listing, editing,
// PDF import and theme classification, and questions answered from the papers.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Research Portfolio API
//   description: |
//     Backend for a research portfolio site. Papers are imported from PDFs in
//     Dropbox, S3 or a local folder, enriched by a language model and grouped into themes.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(app.NewLogger(cfg))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(a.RouterDeps()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", srv.Addr)
	slog.Debug("Model configuration", "base_url", cfg.AnthropicBaseURL, "model", cfg.AnthropicModel)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		slog.Error("API server failed", "error", err)
		os.Exit(1)
	}
}
