// Package main is the entry point for the Wayfarer API server.
// Its sole responsibility is wiring dependencies together and running the
// selected command. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pkordes/wayfarer/backend/internal/blob"
	"github.com/pkordes/wayfarer/backend/internal/config"
	"github.com/pkordes/wayfarer/backend/internal/handler"
	"github.com/pkordes/wayfarer/backend/internal/middleware"
	"github.com/pkordes/wayfarer/backend/internal/repo"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "wayfarer-api",
	Short:         "Travel planning API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// setup loads configuration and installs the JSON logger as the default.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		return config.Config{}, nil, err
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// --- Storage ----------------------------------------------------------
	blobs, err := blob.NewFromConfig(ctx, cfg)
	if err != nil {
		slog.Error("failed to create photo storage", "error", err)
		return err
	}

	store, err := repo.Open(ctx, cfg, blobs, logger)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		return err
	}
	defer store.Close()

	// Verify the remote backend is reachable before accepting traffic.
	if err := store.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		return err
	}
	slog.Info("storage ready", "backend", store.Backend())

	// --- Router -----------------------------------------------------------
	// RequestID tags each request, RealIP trusts X-Forwarded-For, SlogLogger
	// writes one line per request and Recoverer turns panics into 500s.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(store, blobs, logger).Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// Reads get 30 seconds to leave room for photo uploads.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		slog.Error("server error", "error", err)
		return err
	case <-stop:
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
