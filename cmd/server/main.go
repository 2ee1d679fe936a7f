package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omnibrief/omnibrief/internal/ai"
	"github.com/omnibrief/omnibrief/internal/auth"
	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/extractor"
	"github.com/omnibrief/omnibrief/internal/fetcher"
	"github.com/omnibrief/omnibrief/internal/logger"
	"github.com/omnibrief/omnibrief/internal/normalizer"
	"github.com/omnibrief/omnibrief/internal/pipeline"
	"github.com/omnibrief/omnibrief/internal/server"
	"github.com/omnibrief/omnibrief/internal/store"
	"github.com/omnibrief/omnibrief/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "OmniBrief Summarization Service")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	ext := extractor.New(log)
	norm := normalizer.New(cfg, exec, log)
	orch := ai.New(cfg, log)
	pipe := pipeline.New(cfg, ext, norm, orch, log)
	fetch := fetcher.New(cfg, exec, log)
	st := store.New(cfg.Paths.Data, log)
	verifier := auth.NewStatic(cfg.Auth.Tokens)

	srv := server.New(cfg, pipe, fetch, st, verifier, log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Process timeout: %s", cfg.Server.ProcessTimeout)
	log.Info(ctx, "Press Ctrl+C to stop")

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}

	log.Info(ctx, "Server stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Data,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
