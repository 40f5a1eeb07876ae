package service

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync/atomic"

	"pdf-text-extractor/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// MuPDFDecoder decodes PDFs with MuPDF through go-fitz
type MuPDFDecoder struct{}

// NewMuPDFDecoder creates a MuPDF-backed decoder
func NewMuPDFDecoder() *MuPDFDecoder {
	return &MuPDFDecoder{}
}

// Name implements domain.PDFDecoder
func (d *MuPDFDecoder) Name() string {
	return domain.DecoderMuPDF
}

// Open loads the document from memory
func (d *MuPDFDecoder) Open(data []byte) (domain.PDFDocument, error) {
	if len(data) == 0 {
		return nil, errors.New("empty PDF content")
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &mupdfDocument{doc: doc}, nil
}

type mupdfDocument struct {
	doc      *fitz.Document
	consumed atomic.Bool
}

func (d *mupdfDocument) NumPages() int {
	return d.doc.NumPage()
}

func (d *mupdfDocument) Pages() iter.Seq2[domain.PageText, error] {
	return pageSequence(&d.consumed, d.NumPages(), d.page)
}

func (d *mupdfDocument) Close() error {
	return d.doc.Close()
}

// page returns the non-empty lines of a page as fragments. go-fitz pages are
// 0-indexed.
func (d *mupdfDocument) page(number int) (domain.PageText, error) {
	text := domain.PageText{Number: number}
	raw, err := d.doc.Text(number - 1)
	if err != nil {
		return text, fmt.Errorf("page %d: %w", number, err)
	}
	text.Fragments = textLines(raw)
	return text, nil
}

// textLines splits MuPDF page text into trimmed, non-empty lines. MuPDF may
// emit CRLF or bare CR line ends depending on the producer.
func textLines(raw string) []string {
	raw = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(raw)
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
