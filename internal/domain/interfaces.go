package domain

import (
	"context"
	"iter"
	"time"
)

// ContentStore defines the persistence operations for extracted text artifacts
type ContentStore interface {
	Put(ctx context.Context, name string, text string) (string, error)
	Get(ctx context.Context, name string) (string, error)
	List(ctx context.Context) []string
	Dir() string
}

// UploadReceiver persists submitted PDF files to the upload directory
type UploadReceiver interface {
	Receive(ctx context.Context, files []IncomingFile) ([]UploadedFile, error)
	Resolve(storedName string) (string, error)
}

// Extractor turns a stored PDF into a text artifact
type Extractor interface {
	Extract(ctx context.Context, sourcePath string, outputName string) (*ExtractionResult, error)
}

// PDFDecoder opens raw PDF bytes. Implementations wrap a third-party parser.
type PDFDecoder interface {
	Name() string
	Open(data []byte) (PDFDocument, error)
}

// PDFDocument is a decoded PDF. Pages yields page text in document order; the
// sequence is single-use and must not be consumed concurrently.
type PDFDocument interface {
	NumPages() int
	Pages() iter.Seq2[PageText, error]
	Close() error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetHost() string
	GetServerPort() int
	GetPortMaxAttempts() int
	GetUploadPath() string
	GetContentsPath() string
	GetMaxFileSize() int64
	GetMaxUploadFiles() int
	GetLogLevel() string
	GetPDFDecoder() string
	GetExtractionTimeout() time.Duration
	GetMaxConcurrentExtractions() int
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
	GetAllowedOrigins() []string
}
