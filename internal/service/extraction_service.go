package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-text-extractor/internal/domain"
	apperrors "pdf-text-extractor/pkg/errors"

	"golang.org/x/sync/semaphore"
)

const (
	extractionFailed = "extraction failed"
	fallbackName     = "untitled"
)

// ExtractionService decodes stored PDFs and persists their text to the content store
type ExtractionService struct {
	decoder domain.PDFDecoder
	store   domain.ContentStore
	logger  domain.Logger
	slots   *semaphore.Weighted
	timeout time.Duration
}

var _ domain.Extractor = (*ExtractionService)(nil)

// NewExtractionService creates an extraction service. maxConcurrent bounds the
// number of in-flight extractions; timeout bounds each one (0 disables).
func NewExtractionService(
	decoder domain.PDFDecoder,
	store domain.ContentStore,
	logger domain.Logger,
	maxConcurrent int,
	timeout time.Duration,
) *ExtractionService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &ExtractionService{
		decoder: decoder,
		store:   store,
		logger:  logger,
		slots:   semaphore.NewWeighted(int64(maxConcurrent)),
		timeout: timeout,
	}
}

// Extract reads the PDF at sourcePath, extracts its text page by page and
// stores it under the sanitized outputName. Every error is an *AppError
// whose message starts with "extraction failed".
func (s *ExtractionService) Extract(ctx context.Context, sourcePath string, outputName string) (*domain.ExtractionResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, s.fail(sourcePath, contextError(err, "waiting for extraction slot"))
	}
	defer s.slots.Release(1)

	s.logger.Info("Processing PDF", "path", sourcePath, "decoder", s.decoder.Name())

	info, err := os.Stat(sourcePath)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, s.fail(sourcePath, apperrors.NewNotFoundError(domain.ErrSourceNotFound.Error() + ": " + sourcePath))
		}
		return nil, s.fail(sourcePath, apperrors.NewIOError("stat source", err))
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, s.fail(sourcePath, apperrors.NewIOError("read source", err))
	}
	s.logger.Debug("PDF loaded", "path", sourcePath, "bytes", len(data))

	text, pageCount, err := s.extractText(ctx, data)
	if err != nil {
		return nil, s.fail(sourcePath, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, s.fail(sourcePath, apperrors.NewEmptyContentError(domain.ErrNoTextContent.Error()))
	}

	name := domain.SanitizeName(outputName)
	if name == "" {
		name = fallbackName
	}

	txtPath, err := s.store.Put(ctx, name, text)
	if err != nil {
		return nil, s.fail(sourcePath, err)
	}

	result := &domain.ExtractionResult{
		Success:        true,
		Message:        "PDF parsed successfully",
		TxtFilePath:    txtPath,
		OutputFileName: name + domain.ArtifactExt,
		PageCount:      pageCount,
		TextLength:     utf8.RuneCountInString(text),
		ContentsDir:    s.store.Dir(),
		Source:         sourcePath,
	}
	s.logger.Info("Text artifact saved",
		"path", txtPath,
		"pages", result.PageCount,
		"chars", result.TextLength,
	)
	return result, nil
}

// extractText decodes data and concatenates page text in document order,
// one line per page.
func (s *ExtractionService) extractText(ctx context.Context, data []byte) (string, int, error) {
	doc, err := s.decoder.Open(data)
	if err != nil {
		return "", 0, apperrors.NewDecodeError(err.Error(), err)
	}
	defer doc.Close()

	pageCount := doc.NumPages()
	s.logger.Debug("PDF opened", "pages", pageCount)

	var buf strings.Builder
	for page, err := range doc.Pages() {
		if err != nil {
			return "", 0, apperrors.NewDecodeError(err.Error(), err)
		}
		buf.WriteString(page.Text())
		buf.WriteByte('\n')

		if err := ctx.Err(); err != nil {
			return "", 0, contextError(err, fmt.Sprintf("stopped after page %d of %d", page.Number, pageCount))
		}
	}
	return buf.String(), pageCount, nil
}

func (s *ExtractionService) fail(sourcePath string, err error) error {
	wrapped := apperrors.Wrap(err, extractionFailed)
	s.logger.Error("PDF extraction failed", err, "path", sourcePath, "type", string(wrapped.Type))
	return wrapped
}

func contextError(err error, message string) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(message+": timed out", err)
	}
	return apperrors.NewInternalError(message+": "+err.Error(), err)
}
