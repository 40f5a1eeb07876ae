package domain

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ArtifactExt is appended to every artifact name in the content store
const ArtifactExt = ".txt"

var (
	// \s is ASCII-only in RE2; include \v, Unicode separators and the BOM.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{feff}]+`)
	unsafeChars   = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// SanitizeName maps an arbitrary string to a filesystem-safe artifact name:
// whitespace runs become "_", then everything outside [A-Za-z0-9_-] is dropped.
// SanitizeName(SanitizeName(x)) == SanitizeName(x).
func SanitizeName(name string) string {
	name = whitespaceRun.ReplaceAllString(name, "_")
	return unsafeChars.ReplaceAllString(name, "")
}

// StoredName builds the server-side name for an upload:
// "{unix millis}-{base name with whitespace runs replaced by _}".
func StoredName(now time.Time, originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if base == "." || base == "/" {
		base = "document.pdf"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + whitespaceRun.ReplaceAllString(base, "_")
}

// OutputStem returns name without directory and extension, the basis for an
// artifact name derived from an upload.
func OutputStem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsPDF reports whether a submitted file passes the upload filter.
func IsPDF(name, contentType string) bool {
	return contentType == "application/pdf" || strings.HasSuffix(strings.ToLower(name), ".pdf")
}
