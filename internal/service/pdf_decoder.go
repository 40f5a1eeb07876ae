package service

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync/atomic"

	"pdf-text-extractor/internal/domain"

	"github.com/ledongthuc/pdf"
)

// ErrPagesConsumed is yielded when a document's page sequence is iterated twice.
var ErrPagesConsumed = errors.New("page sequence already consumed")

// NewPDFDecoder returns the decoder backend registered under name
func NewPDFDecoder(name string) (domain.PDFDecoder, error) {
	switch name {
	case "", domain.DecoderPDF:
		return NewLedongthucDecoder(), nil
	case domain.DecoderMuPDF:
		return NewMuPDFDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown PDF decoder %q", name)
	}
}

// LedongthucDecoder decodes PDFs with the pure-Go github.com/ledongthuc/pdf reader
type LedongthucDecoder struct{}

// NewLedongthucDecoder creates the default decoder
func NewLedongthucDecoder() *LedongthucDecoder {
	return &LedongthucDecoder{}
}

// Name implements domain.PDFDecoder
func (d *LedongthucDecoder) Name() string {
	return domain.DecoderPDF
}

// Open parses the document structure. Page content is decoded lazily.
func (d *LedongthucDecoder) Open(data []byte) (doc domain.PDFDocument, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty PDF content")
	}
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &ledongthucDocument{reader: reader}, nil
}

type ledongthucDocument struct {
	reader   *pdf.Reader
	consumed atomic.Bool
}

func (d *ledongthucDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) Pages() iter.Seq2[domain.PageText, error] {
	return pageSequence(&d.consumed, d.NumPages(), d.page)
}

func (d *ledongthucDocument) Close() error {
	return nil
}

// page extracts the text runs of page number (1-indexed), row by row from the
// top of the page.
func (d *ledongthucDocument) page(number int) (text domain.PageText, err error) {
	text.Number = number
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", number, r)
		}
	}()

	p := d.reader.Page(number)
	if p.V.IsNull() {
		return text, nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return text, fmt.Errorf("page %d: %w", number, err)
	}
	for _, row := range rows {
		for _, run := range row.Content {
			if strings.TrimSpace(run.S) == "" {
				continue
			}
			text.Fragments = append(text.Fragments, run.S)
		}
	}
	return text, nil
}

// pageSequence builds a single-use, in-order page iterator over 1..numPages.
// Iteration stops after the first error.
func pageSequence(consumed *atomic.Bool, numPages int, extract func(number int) (domain.PageText, error)) iter.Seq2[domain.PageText, error] {
	return func(yield func(domain.PageText, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield(domain.PageText{}, ErrPagesConsumed)
			return
		}
		for number := 1; number <= numPages; number++ {
			page, err := extract(number)
			if !yield(page, err) || err != nil {
				return
			}
		}
	}
}
