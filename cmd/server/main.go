package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"beacon/internal/auth"
	"beacon/internal/config"
	"beacon/internal/handler"
	"beacon/internal/middleware"
	"beacon/internal/render"
	"beacon/internal/service/docsite"
	"beacon/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"content_dir", cfg.ContentDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the content store - a broken content tree stops the server
	// here rather than surfacing on reader requests
	contentStore, err := store.NewFSStore(cfg.ContentDir, logger)
	if err != nil {
		log.Fatalf("Failed to load content store: %v", err)
	}

	// Dev-mode content watcher
	if cfg.Watch {
		watcher := store.NewWatcher(contentStore, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("content watcher exited", "error", err)
			}
		}()
	}

	// Preview verifier is optional: without a JWKS URL, drafts stay hidden
	var previewVerifier auth.PreviewVerifier
	if cfg.PreviewJWKSURL != "" {
		verifier, err := auth.NewJWKSVerifier(ctx, cfg.PreviewJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create preview verifier: %v", err)
		}
		defer verifier.Close()
		previewVerifier = verifier
	}

	// Create rendering pipeline and services
	pipeline := render.NewPipeline()
	analyzer := docsite.NewContentAnalyzer()
	docService := docsite.NewDocumentService(contentStore, pipeline, analyzer, cfg.DefaultLocale, logger)
	treeService := docsite.NewTreeService(contentStore, cfg.DefaultLocale, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Challenge routes
	mux.HandleFunc("GET /api/challenges/{slug}", docHandler.GetChallenge)
	mux.HandleFunc("GET /api/challenges/{slug}/toc", docHandler.GetChallengeTOC)

	// Course routes
	mux.HandleFunc("GET /api/courses/{slug}/{topic}", docHandler.GetCourseTopic)
	mux.HandleFunc("GET /api/courses/{slug}/{topic}/toc", docHandler.GetCourseTopicTOC)

	// Navigation tree
	mux.HandleFunc("GET /api/collections/{collection}/tree", treeHandler.GetTree)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Preview → Routes
	h = middleware.Preview(previewVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
