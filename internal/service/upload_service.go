package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"pdf-text-extractor/internal/domain"
	apperrors "pdf-text-extractor/pkg/errors"
)

// UploadURLPrefix is the URL prefix the upload directory is served under
const UploadURLPrefix = "/uploads/"

// UploadService stores submitted PDF files in the upload directory
type UploadService struct {
	dir      string
	maxFiles int
	logger   domain.Logger
	now      func() time.Time
}

var _ domain.UploadReceiver = (*UploadService)(nil)

// NewUploadService creates an upload receiver rooted at dir. Call Init before use.
func NewUploadService(dir string, maxFiles int, logger domain.Logger) *UploadService {
	return &UploadService{
		dir:      dir,
		maxFiles: maxFiles,
		logger:   logger,
		now:      time.Now,
	}
}

// Init creates the upload directory if it does not exist
func (s *UploadService) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir %s: %w", s.dir, err)
	}
	return nil
}

// Dir returns the upload directory
func (s *UploadService) Dir() string {
	return s.dir
}

// Receive persists every PDF among files, in order. Files that are neither
// declared application/pdf nor named *.pdf are skipped.
func (s *UploadService) Receive(ctx context.Context, files []domain.IncomingFile) ([]domain.UploadedFile, error) {
	if s.maxFiles > 0 && len(files) > s.maxFiles {
		return nil, apperrors.NewValidationError(
			domain.ErrTooManyFiles.Error(),
			fmt.Sprintf("at most %d files per upload, got %d", s.maxFiles, len(files)),
		)
	}

	accepted := make([]domain.UploadedFile, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			s.discard(accepted)
			return nil, apperrors.NewInternalError("upload cancelled", err)
		}
		if !domain.IsPDF(f.Name, f.ContentType) {
			s.logger.Debug("Skipping non-PDF upload", "name", f.Name, "content_type", f.ContentType)
			continue
		}

		uploaded, err := s.store(f)
		if err != nil {
			s.discard(accepted)
			return nil, err
		}
		accepted = append(accepted, uploaded)
	}

	s.logger.Info("Upload received", "submitted", len(files), "accepted", len(accepted))
	return accepted, nil
}

func (s *UploadService) store(f domain.IncomingFile) (domain.UploadedFile, error) {
	storedName := domain.StoredName(s.now(), f.Name)
	target := filepath.Join(s.dir, storedName)

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return domain.UploadedFile{}, apperrors.NewIOError("create upload file", err)
	}
	size, err := io.Copy(out, f.Content)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return domain.UploadedFile{}, apperrors.NewIOError("write upload file", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(target)
		return domain.UploadedFile{}, apperrors.NewIOError("close upload file", err)
	}

	s.logger.Debug("Upload stored", "original_name", f.Name, "stored_name", storedName, "size", size)
	return domain.UploadedFile{
		OriginalName: f.Name,
		StoredName:   storedName,
		Path:         path.Join(UploadURLPrefix, storedName),
		Size:         size,
	}, nil
}

// discard removes files stored earlier in a submission that failed part way,
// so nothing unreported stays in the upload directory.
func (s *UploadService) discard(stored []domain.UploadedFile) {
	for _, f := range stored {
		if err := os.Remove(filepath.Join(s.dir, f.StoredName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to remove partial upload", "stored_name", f.StoredName, "error", err)
		}
	}
}

// Resolve maps a stored name to its path in the upload directory. Names with
// directory components are rejected.
func (s *UploadService) Resolve(storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." ||
		strings.ContainsAny(storedName, `/\`) || storedName != filepath.Base(storedName) {
		return "", apperrors.NewValidationError(domain.ErrInvalidFileName.Error(), storedName)
	}
	return filepath.Join(s.dir, storedName), nil
}
