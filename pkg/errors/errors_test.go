package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewValidationError("filename required"), http.StatusBadRequest},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewDecodeError("bad xref", stderrors.New("eof")), http.StatusInternalServerError},
		{NewEmptyContentError("no text"), http.StatusInternalServerError},
		{NewIOError("write", stderrors.New("disk full")), http.StatusInternalServerError},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := GetStatusCode(tc.err); got != tc.want {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestWrapKeepsType(t *testing.T) {
	base := NewNotFoundError("file not found: a.pdf")
	wrapped := Wrap(fmt.Errorf("lookup: %w", base), "extraction failed")

	if wrapped.Type != ErrorTypeNotFound {
		t.Fatalf("expected type %s, got %s", ErrorTypeNotFound, wrapped.Type)
	}
	if wrapped.Message != "extraction failed: file not found: a.pdf" {
		t.Fatalf("unexpected message: %s", wrapped.Message)
	}
	if GetStatusCode(wrapped) != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", GetStatusCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Fatalf("expected wrapped error to unwrap to base")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "extraction failed")
	if !IsType(wrapped, ErrorTypeInternal) {
		t.Fatalf("expected internal error, got %s", wrapped.Type)
	}
	if Message(wrapped) != "extraction failed: boom" {
		t.Fatalf("unexpected message: %s", Message(wrapped))
	}
}
