package handler

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"pdf-text-extractor/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// maxParseBodySize bounds the JSON body of a parse request
const maxParseBodySize = 1 << 20

// ExtractionHandler triggers text extraction for uploaded files
type ExtractionHandler struct {
	uploads   domain.UploadReceiver
	extractor domain.Extractor
	logger    domain.Logger
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(uploads domain.UploadReceiver, extractor domain.Extractor, logger domain.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		uploads:   uploads,
		extractor: extractor,
		logger:    logger,
	}
}

type parseRequest struct {
	Filename     string `json:"filename" validate:"required"`
	OriginalName string `json:"originalName"`
}

// ParsePDF handles POST /parse-pdf
func (h *ExtractionHandler) ParsePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxParseBodySize)

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}

	h.logger.Info("Parse requested",
		"filename", req.Filename,
		"original_name", req.OriginalName,
		"request_id", GetRequestID(r.Context()),
	)

	sourcePath, err := h.uploads.Resolve(req.Filename)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if _, err := os.Stat(sourcePath); errors.Is(err, fs.ErrNotExist) {
		h.logger.Warn("Upload not found", "path", sourcePath)
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	basis := req.Filename
	if req.OriginalName != "" {
		basis = req.OriginalName
	}

	result, err := h.extractor.Extract(r.Context(), sourcePath, domain.OutputStem(basis))
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.logger.Info("Parse succeeded", "output", result.OutputFileName)
	writeJSON(w, http.StatusOK, result)
}
