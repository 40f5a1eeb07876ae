package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"pdf-text-extractor/internal/domain"

	"github.com/go-pdf/fpdf"
)

// MockLogger records log lines for assertions
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

func (m *MockLogger) has(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	m.messages = append(m.messages, line)
	m.mu.Unlock()
}

// fakeDecoder serves canned pages regardless of input bytes
type fakeDecoder struct {
	pages   []domain.PageText
	openErr error
	pageErr map[int]error
	onPage  func(number int)
	opened  atomic.Int32
}

func (d *fakeDecoder) Name() string { return "fake" }

func (d *fakeDecoder) Open(data []byte) (domain.PDFDocument, error) {
	d.opened.Add(1)
	if d.openErr != nil {
		return nil, d.openErr
	}
	return &fakeDocument{decoder: d}, nil
}

type fakeDocument struct {
	decoder  *fakeDecoder
	consumed atomic.Bool
	closed   bool
}

func (d *fakeDocument) NumPages() int { return len(d.decoder.pages) }

func (d *fakeDocument) Pages() iter.Seq2[domain.PageText, error] {
	return pageSequence(&d.consumed, len(d.decoder.pages), func(number int) (domain.PageText, error) {
		if d.decoder.onPage != nil {
			d.decoder.onPage(number)
		}
		if err := d.decoder.pageErr[number]; err != nil {
			return domain.PageText{Number: number}, err
		}
		return d.decoder.pages[number-1], nil
	})
}

func (d *fakeDocument) Close() error {
	if d.closed {
		return errors.New("closed twice")
	}
	d.closed = true
	return nil
}

// failingReader fails every read, simulating a broken multipart part
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

// cancelOnRead cancels a context once its content has been read
type cancelOnRead struct {
	cancel context.CancelFunc
	r      io.Reader
}

func (c cancelOnRead) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err == io.EOF {
		c.cancel()
	}
	return n, err
}

func pages(texts ...[]string) []domain.PageText {
	out := make([]domain.PageText, len(texts))
	for i, fragments := range texts {
		out[i] = domain.PageText{Number: i + 1, Fragments: fragments}
	}
	return out
}

// makePDF renders one page per entry with fpdf; an empty entry is a blank page.
func makePDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pageTexts {
		doc.AddPage()
		if text != "" {
			doc.Cell(40, 10, text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("render PDF: %v", err)
	}
	return buf.Bytes()
}
