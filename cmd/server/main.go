package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-text-extractor/internal/config"
	"pdf-text-extractor/internal/domain"
	"pdf-text-extractor/internal/handler"
	"pdf-text-extractor/internal/server"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialise application: %v", err)
	}

	err = run(container)
	if err != nil {
		container.Logger.Error("Server stopped with error", err)
	}
	syncLogger(container.Logger)
	if err != nil {
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a fatal server error
func run(container *config.Container) error {
	cfg := container.Config

	// Handlers
	uploadHandler := handler.NewUploadHandler(
		container.UploadService,
		cfg.GetMaxFileSize(),
		container.Logger,
	)
	extractionHandler := handler.NewExtractionHandler(
		container.UploadService,
		container.ExtractionService,
		container.Logger,
	)
	contentsHandler := handler.NewContentsHandler(
		container.ContentStore,
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		uploadHandler,
		extractionHandler,
		contentsHandler,
		handler.RouterOptions{
			UploadDir:      container.UploadService.Dir(),
			AllowedOrigins: cfg.GetAllowedOrigins(),
			RateLimiter:    handler.NewRateLimiter(cfg.GetRateLimitRPS(), cfg.GetRateLimitBurst()),
			Logger:         container.Logger,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := server.Listen(ctx, cfg.GetHost(), cfg.GetServerPort(), cfg.GetPortMaxAttempts(), server.RetryDelay, container.Logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.Serve(ctx, srv, ln, shutdownTimeout, container.Logger)
}

func syncLogger(logger domain.Logger) {
	if s, ok := logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
