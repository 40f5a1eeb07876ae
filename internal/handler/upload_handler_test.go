package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type uploadPart struct {
	name        string
	contentType string
	body        []byte
}

func multipartBody(t *testing.T, parts ...uploadPart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+UploadFormField+`"; filename="`+p.name+`"`)
		h.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := w.Write(p.body); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func TestUploadHandler_StoresPDFs(t *testing.T) {
	deps := newTestDeps(t)
	h := NewUploadHandler(deps.uploads, 1<<20, deps.logger)

	body, contentType := multipartBody(t,
		uploadPart{name: "Annual Report.pdf", contentType: "application/pdf", body: []byte("%PDF-1.4 fake")},
		uploadPart{name: "notes.txt", contentType: "text/plain", body: []byte("ignored")},
		uploadPart{name: "scan.PDF", contentType: "application/octet-stream", body: []byte("%PDF-1.4 scan")},
	)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Files   []struct {
			OriginalName string `json:"originalName"`
			Filename     string `json:"filename"`
			Path         string `json:"path"`
			Size         int64  `json:"size"`
		} `json:"files"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || len(resp.Files) != 2 {
		t.Fatalf("expected 2 stored files, got %+v", resp)
	}

	first := resp.Files[0]
	if first.OriginalName != "Annual Report.pdf" {
		t.Fatalf("unexpected original name %q", first.OriginalName)
	}
	if !strings.HasSuffix(first.Filename, "-Annual_Report.pdf") {
		t.Fatalf("unexpected stored name %q", first.Filename)
	}
	if first.Path != "/uploads/"+first.Filename {
		t.Fatalf("unexpected path %q", first.Path)
	}
	if first.Size != int64(len("%PDF-1.4 fake")) {
		t.Fatalf("unexpected size %d", first.Size)
	}

	data, err := os.ReadFile(filepath.Join(deps.uploads.Dir(), first.Filename))
	if err != nil {
		t.Fatalf("expected stored file: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected stored content %q", data)
	}
	if resp.Files[1].OriginalName != "scan.PDF" {
		t.Fatalf("expected scan.PDF second, got %q", resp.Files[1].OriginalName)
	}
}

func TestUploadHandler_NoPDFs(t *testing.T) {
	deps := newTestDeps(t)
	h := NewUploadHandler(deps.uploads, 1<<20, deps.logger)

	body, contentType := multipartBody(t,
		uploadPart{name: "notes.txt", contentType: "text/plain", body: []byte("ignored")},
	)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"success":true,"files":[]}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	deps := newTestDeps(t)
	h := NewUploadHandler(deps.uploads, 1<<20, deps.logger)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"files":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid multipart form") {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestUploadHandler_TooLarge(t *testing.T) {
	deps := newTestDeps(t)
	h := NewUploadHandler(deps.uploads, 1024, deps.logger)

	body, contentType := multipartBody(t,
		uploadPart{name: "big.pdf", contentType: "application/pdf", body: bytes.Repeat([]byte("x"), 64<<10)},
	)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
	}
	entries, err := os.ReadDir(deps.uploads.Dir())
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, got %d", len(entries))
	}
}

func TestUploadHandler_TooManyFiles(t *testing.T) {
	deps := newTestDeps(t)
	h := NewUploadHandler(deps.uploads, 1<<20, deps.logger)

	parts := make([]uploadPart, 51)
	for i := range parts {
		parts[i] = uploadPart{name: "doc.pdf", contentType: "application/pdf", body: []byte("%PDF")}
	}
	body, contentType := multipartBody(t, parts...)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
