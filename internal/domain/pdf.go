package domain

import (
	"io"
	"strings"
)

// Decoder backends selectable through configuration
const (
	DecoderPDF   = "pdf"
	DecoderMuPDF = "mupdf"
)

// PageText holds the text fragments of a single page, in reading order
type PageText struct {
	Number    int      `json:"number"` // 1-indexed
	Fragments []string `json:"fragments"`
}

// Text joins the page fragments with a single space
func (p PageText) Text() string {
	return strings.Join(p.Fragments, " ")
}

// IncomingFile is one entry of a multipart submission
type IncomingFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// UploadedFile describes a PDF persisted to the upload directory
type UploadedFile struct {
	OriginalName string `json:"originalName"`
	StoredName   string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// ExtractionResult describes a successful extraction
type ExtractionResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TxtFilePath    string `json:"txtFilePath"`
	OutputFileName string `json:"outputFileName"`
	PageCount      int    `json:"pageCount"`
	TextLength     int    `json:"textLength"`
	ContentsDir    string `json:"contents"`
	Source         string `json:"-"`
}
