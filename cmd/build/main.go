package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"beacon/internal/build"
	"beacon/internal/config"
	"beacon/internal/render"
	"beacon/internal/service/docsite"
	"beacon/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for CI)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("build starting",
		"content_dir", cfg.ContentDir,
		"build_dir", cfg.BuildDir,
	)

	// A scan failure here is exactly what the build exists to catch
	contentStore, err := store.NewFSStore(cfg.ContentDir, logger)
	if err != nil {
		log.Fatalf("Content store failed to load: %v", err)
	}

	builder := build.NewBuilder(
		contentStore,
		render.NewPipeline(),
		docsite.NewContentAnalyzer(),
		cfg.BuildDir,
		logger,
	)

	if err := builder.Run(context.Background()); err != nil {
		log.Fatalf("Build failed: %v", err)
	}
}
