package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pdf-text-extractor/internal/domain"
	apperrors "pdf-text-extractor/pkg/errors"
)

// FileContentStore is a directory-backed store of text artifacts. Every
// artifact lives at <dir>/<sanitized name>.txt.
type FileContentStore struct {
	dir    string
	locks  *keyedMutex
	logger domain.Logger
}

var _ domain.ContentStore = (*FileContentStore)(nil)

// NewFileContentStore creates a content store rooted at dir. Call Init before use.
func NewFileContentStore(dir string, logger domain.Logger) *FileContentStore {
	return &FileContentStore{
		dir:    dir,
		locks:  newKeyedMutex(),
		logger: logger,
	}
}

// Init creates the store directory if it does not exist
func (s *FileContentStore) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create contents dir %s: %w", s.dir, err)
	}
	return nil
}

// Dir returns the store root
func (s *FileContentStore) Dir() string {
	return s.dir
}

// Path returns the absolute-or-relative path an artifact name maps to
func (s *FileContentStore) Path(name string) string {
	return filepath.Join(s.dir, domain.SanitizeName(name)+domain.ArtifactExt)
}

// Put writes text under the sanitized name, replacing any previous artifact.
// The data is fsynced and renamed into place before Put returns.
func (s *FileContentStore) Put(ctx context.Context, name string, text string) (string, error) {
	key := domain.SanitizeName(name)
	if key == "" {
		return "", apperrors.NewValidationError("artifact name is empty after sanitization", name)
	}
	target := filepath.Join(s.dir, key+domain.ArtifactExt)

	if err := s.locks.Lock(ctx, key); err != nil {
		return "", apperrors.NewTimeoutError("waiting for artifact lock", err)
	}
	defer s.locks.Unlock(key)

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return "", apperrors.NewIOError("create temp artifact", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(text); err != nil {
		cleanup()
		return "", apperrors.NewIOError("write artifact", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", apperrors.NewIOError("sync artifact", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", apperrors.NewIOError("close artifact", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", apperrors.NewIOError("chmod artifact", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", apperrors.NewIOError("rename artifact", err)
	}

	s.logger.Debug("Artifact stored", "name", key+domain.ArtifactExt, "bytes", len(text))
	return target, nil
}

// Get returns the content of an artifact. The ".txt" suffix is optional.
func (s *FileContentStore) Get(ctx context.Context, name string) (string, error) {
	key := strings.TrimSuffix(name, domain.ArtifactExt)
	// Only sanitized names can exist in the store.
	if key == "" || domain.SanitizeName(key) != key {
		return "", apperrors.NewNotFoundError(domain.ErrArtifactNotFound.Error() + ": " + name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key+domain.ArtifactExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.NewNotFoundError(domain.ErrArtifactNotFound.Error() + ": " + name)
		}
		return "", apperrors.NewIOError("read artifact", err)
	}
	return string(data), nil
}

// List returns the artifact names currently in the store, sorted. Listing
// failures are logged and yield an empty slice.
func (s *FileContentStore) List(ctx context.Context) []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("Failed to list contents", "dir", s.dir, "error", err)
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, domain.ArtifactExt) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
