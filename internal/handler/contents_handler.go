package handler

import (
	"net/http"

	"pdf-text-extractor/internal/domain"

	"github.com/gorilla/mux"
)

// ContentsHandler serves extracted text artifacts
type ContentsHandler struct {
	store  domain.ContentStore
	logger domain.Logger
}

// NewContentsHandler creates a new contents handler
func NewContentsHandler(store domain.ContentStore, logger domain.Logger) *ContentsHandler {
	return &ContentsHandler{
		store:  store,
		logger: logger,
	}
}

type contentResponse struct {
	Success  bool   `json:"success"`
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

type contentListResponse struct {
	Success bool     `json:"success"`
	Files   []string `json:"files"`
}

// GetContent handles GET /contents/{fileName}
func (h *ContentsHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	fileName := mux.Vars(r)["fileName"]

	content, err := h.store.Get(r.Context(), fileName)
	if err != nil {
		h.logger.Debug("Artifact lookup failed", "file_name", fileName, "error", err)
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contentResponse{
		Success:  true,
		FileName: fileName,
		Content:  content,
	})
}

// ListContents handles GET /contents
func (h *ContentsHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Files:   h.store.List(r.Context()),
	})
}
