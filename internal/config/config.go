package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-text-extractor/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	Host                     string
	ServerPort               int
	PortMaxAttempts          int
	UploadPath               string
	ContentsPath             string
	MaxFileSize              int64
	MaxUploadFiles           int
	LogLevel                 string
	PDFDecoder               string
	ExtractionTimeout        time.Duration
	MaxConcurrentExtractions int
	RateLimitRPS             float64
	RateLimitBurst           int
	AllowedOrigins           []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() *AppConfig {
	return &AppConfig{
		Host: getEnvOrDefault("HOST", "0.0.0.0"),
		// PaaS platforms provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:               getEnvIntOrDefault("PORT", getEnvIntOrDefault("SERVER_PORT", 4000)),
		PortMaxAttempts:          getEnvIntOrDefault("PORT_MAX_ATTEMPTS", 10),
		UploadPath:               getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		ContentsPath:             getEnvOrDefault("CONTENTS_PATH", "./Contents"),
		MaxFileSize:              getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		MaxUploadFiles:           getEnvIntOrDefault("MAX_UPLOAD_FILES", 50),
		LogLevel:                 getEnvOrDefault("LOG_LEVEL", "info"),
		PDFDecoder:               getEnvOrDefault("PDF_DECODER", domain.DecoderPDF),
		ExtractionTimeout:        getEnvDurationOrDefault("EXTRACTION_TIMEOUT", 2*time.Minute),
		MaxConcurrentExtractions: getEnvIntOrDefault("MAX_CONCURRENT_EXTRACTIONS", 4),
		RateLimitRPS:             getEnvFloatOrDefault("RATE_LIMIT_RPS", 0),
		RateLimitBurst:           getEnvIntOrDefault("RATE_LIMIT_BURST", 20),
		AllowedOrigins:           getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// Validate rejects configurations the server cannot start with
func (c *AppConfig) Validate() error {
	switch {
	case c.ServerPort < 0 || c.ServerPort > 65535:
		return &domain.ValidationError{Field: "PORT", Message: fmt.Sprintf("out of range: %d", c.ServerPort)}
	case c.PortMaxAttempts < 1:
		return &domain.ValidationError{Field: "PORT_MAX_ATTEMPTS", Message: "must be at least 1"}
	case c.UploadPath == "":
		return &domain.ValidationError{Field: "UPLOAD_PATH", Message: "must not be empty"}
	case c.ContentsPath == "":
		return &domain.ValidationError{Field: "CONTENTS_PATH", Message: "must not be empty"}
	case c.MaxFileSize <= 0:
		return &domain.ValidationError{Field: "MAX_FILE_SIZE", Message: "must be positive"}
	case c.MaxUploadFiles < 1:
		return &domain.ValidationError{Field: "MAX_UPLOAD_FILES", Message: "must be at least 1"}
	case c.PDFDecoder != domain.DecoderPDF && c.PDFDecoder != domain.DecoderMuPDF:
		return &domain.ValidationError{Field: "PDF_DECODER", Message: fmt.Sprintf("unknown decoder %q", c.PDFDecoder)}
	case c.MaxConcurrentExtractions < 1:
		return &domain.ValidationError{Field: "MAX_CONCURRENT_EXTRACTIONS", Message: "must be at least 1"}
	case c.RateLimitRPS < 0:
		return &domain.ValidationError{Field: "RATE_LIMIT_RPS", Message: "must not be negative"}
	}
	return nil
}

// GetHost returns the listening host
func (c *AppConfig) GetHost() string {
	return c.Host
}

// GetServerPort returns the first port to try
func (c *AppConfig) GetServerPort() int {
	return c.ServerPort
}

// GetPortMaxAttempts returns how many consecutive ports are tried
func (c *AppConfig) GetPortMaxAttempts() int {
	return c.PortMaxAttempts
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetContentsPath returns the content store directory path
func (c *AppConfig) GetContentsPath() string {
	return c.ContentsPath
}

// GetMaxFileSize returns the maximum allowed request body size for uploads
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetMaxUploadFiles returns the maximum number of files per upload
func (c *AppConfig) GetMaxUploadFiles() int {
	return c.MaxUploadFiles
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetPDFDecoder returns the decoder backend name
func (c *AppConfig) GetPDFDecoder() string {
	return c.PDFDecoder
}

// GetExtractionTimeout returns the per-extraction timeout
func (c *AppConfig) GetExtractionTimeout() time.Duration {
	return c.ExtractionTimeout
}

// GetMaxConcurrentExtractions returns the extraction pool size
func (c *AppConfig) GetMaxConcurrentExtractions() int {
	return c.MaxConcurrentExtractions
}

// GetRateLimitRPS returns the per-client request rate; 0 disables limiting
func (c *AppConfig) GetRateLimitRPS() float64 {
	return c.RateLimitRPS
}

// GetRateLimitBurst returns the per-client burst size
func (c *AppConfig) GetRateLimitBurst() int {
	return c.RateLimitBurst
}

// GetAllowedOrigins returns the CORS origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
