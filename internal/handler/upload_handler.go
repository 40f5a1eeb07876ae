package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"pdf-text-extractor/internal/domain"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// UploadFormField is the multipart field carrying the PDFs
const UploadFormField = "files"

// UploadHandler handles PDF uploads
type UploadHandler struct {
	receiver    domain.UploadReceiver
	maxBodySize int64
	logger      domain.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(receiver domain.UploadReceiver, maxBodySize int64, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		receiver:    receiver,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

type uploadResponse struct {
	Success bool                  `json:"success"`
	Files   []domain.UploadedFile `json:"files"`
}

// Upload handles POST /upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		h.logger.Warn("Invalid multipart upload", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[UploadFormField]
	incoming := make([]domain.IncomingFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded part", err, "name", fh.Filename)
			writeError(w, http.StatusInternalServerError, "Failed to read upload")
			return
		}
		opened = append(opened, f)
		incoming = append(incoming, domain.IncomingFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}

	files, err := h.receiver.Receive(r.Context(), incoming)
	if err != nil {
		h.logger.Error("Upload failed", err, "request_id", GetRequestID(r.Context()))
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Success: true, Files: files})
}
