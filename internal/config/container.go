package config

import (
	"fmt"

	"pdf-text-extractor/internal/domain"
	"pdf-text-extractor/internal/repository"
	"pdf-text-extractor/internal/service"
	"pdf-text-extractor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            *AppConfig
	Logger            domain.Logger
	ContentStore      *repository.FileContentStore
	UploadService     *service.UploadService
	ExtractionService *service.ExtractionService
}

// NewContainer loads configuration from the environment and wires the
// application. Directories are created here; any failure is returned.
func NewContainer() (*Container, error) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return NewContainerWith(cfg, logger.NewLogger(cfg.GetLogLevel()))
}

// NewContainerWith wires the application from an explicit config and logger
func NewContainerWith(cfg *AppConfig, appLogger domain.Logger) (*Container, error) {
	decoder, err := service.NewPDFDecoder(cfg.GetPDFDecoder())
	if err != nil {
		return nil, err
	}

	store := repository.NewFileContentStore(cfg.GetContentsPath(), appLogger)
	if err := store.Init(); err != nil {
		return nil, err
	}

	uploads := service.NewUploadService(cfg.GetUploadPath(), cfg.GetMaxUploadFiles(), appLogger)
	if err := uploads.Init(); err != nil {
		return nil, err
	}

	extraction := service.NewExtractionService(
		decoder,
		store,
		appLogger,
		cfg.GetMaxConcurrentExtractions(),
		cfg.GetExtractionTimeout(),
	)

	appLogger.Info("Container initialised",
		"uploads", cfg.GetUploadPath(),
		"contents", cfg.GetContentsPath(),
		"decoder", decoder.Name(),
	)

	return &Container{
		Config:            cfg,
		Logger:            appLogger,
		ContentStore:      store,
		UploadService:     uploads,
		ExtractionService: extraction,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
