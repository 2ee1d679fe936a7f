package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/omnibrief/omnibrief/internal/ai"
	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/export"
	"github.com/omnibrief/omnibrief/internal/extractor"
	"github.com/omnibrief/omnibrief/internal/logger"
	"github.com/omnibrief/omnibrief/internal/model"
	"github.com/omnibrief/omnibrief/internal/normalizer"
	"github.com/omnibrief/omnibrief/internal/pipeline"
	"github.com/omnibrief/omnibrief/internal/watcher"
	"github.com/omnibrief/omnibrief/pkg/executor"
)

// mediaTypes fills in extensions the stdlib mime table doesn't know.
var mediaTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".flv":  "video/x-flv",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".log":  "text/plain",
	".txt":  "text/plain",
}

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
	log.Info(ctx, "OmniBrief Drop-Folder Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

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

	proc := &dropProcessor{cfg: cfg, pipeline: pipe, logger: log}

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Pipeline stopped")
}

type dropProcessor struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	logger   logger.Logger
}

// Process summarizes one dropped file, writes the summary docx to the output
// folder, and archives the original.
func (p *dropProcessor) Process(ctx context.Context, filePath string) error {
	startTime := time.Now()
	name := filepath.Base(filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Server.ProcessTimeout)
	defer cancel()

	asset := model.MediaAsset{
		Path:     filePath,
		MIMEType: typeForFile(filePath),
		Size:     info.Size(),
	}

	result, err := p.pipeline.Process(ctx, asset)
	if err != nil {
		return fmt.Errorf("process %s: %w", name, err)
	}

	rec := model.SummaryRecord{
		ID:             uuid.NewString(),
		UserID:         "local",
		FileName:       name,
		FileType:       result.FileType,
		FileSize:       info.Size(),
		Summary:        result.Summary,
		KeyPoints:      result.KeyPoints,
		Chapters:       result.Chapters,
		Speakers:       result.Speakers,
		CreatedAt:      time.Now().UTC(),
		ProcessingTime: time.Since(startTime).Milliseconds(),
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	outPath := filepath.Join(p.cfg.Paths.Output, base+"_summary.docx")
	if err := export.WriteDocx(rec, outPath); err != nil {
		return fmt.Errorf("write summary docx: %w", err)
	}

	if err := os.Rename(filePath, filepath.Join(p.cfg.Paths.Archived, name)); err != nil {
		p.logger.Warn(ctx, "Failed to archive %s: %v", filePath, err)
	}

	p.logger.Info(ctx, "Summarized %s -> %s (%s)", name, outPath, time.Since(startTime))
	return nil
}

func typeForFile(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := mediaTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Uploads,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
