package handler

import (
	"context"
	"sync"
	"testing"

	"pdf-text-extractor/internal/domain"
	"pdf-text-extractor/internal/repository"
	"pdf-text-extractor/internal/service"
)

// MockHandlerLogger records messages logged by handlers under test
type MockHandlerLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})  { l.record("INFO: " + msg) }
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) { l.record("DEBUG: " + msg) }
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  { l.record("WARN: " + msg) }

func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.record("ERROR: " + msg)
}

func (l *MockHandlerLogger) record(line string) {
	l.mu.Lock()
	l.messages = append(l.messages, line)
	l.mu.Unlock()
}

func (l *MockHandlerLogger) has(line string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m == line {
			return true
		}
	}
	return false
}

// mockExtractor stores a fixed text under the requested output name
type mockExtractor struct {
	store domain.ContentStore
	text  string
	err   error

	mu          sync.Mutex
	sourcePath  string
	outputNames []string
}

func (m *mockExtractor) Extract(ctx context.Context, sourcePath string, outputName string) (*domain.ExtractionResult, error) {
	m.mu.Lock()
	m.sourcePath = sourcePath
	m.outputNames = append(m.outputNames, outputName)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	path, err := m.store.Put(ctx, outputName, m.text)
	if err != nil {
		return nil, err
	}
	name := domain.SanitizeName(outputName) + domain.ArtifactExt
	return &domain.ExtractionResult{
		Success:        true,
		Message:        "PDF parsed successfully",
		TxtFilePath:    path,
		OutputFileName: name,
		PageCount:      1,
		TextLength:     len([]rune(m.text)),
		ContentsDir:    m.store.Dir(),
	}, nil
}

type testDeps struct {
	logger    *MockHandlerLogger
	uploads   *service.UploadService
	store     *repository.FileContentStore
	extractor *mockExtractor
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	logger := NewMockHandlerLogger()
	uploads := service.NewUploadService(t.TempDir(), 50, logger)
	if err := uploads.Init(); err != nil {
		t.Fatalf("init uploads: %v", err)
	}
	store := repository.NewFileContentStore(t.TempDir(), logger)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return &testDeps{
		logger:    logger,
		uploads:   uploads,
		store:     store,
		extractor: &mockExtractor{store: store, text: "Hello World\n"},
	}
}
