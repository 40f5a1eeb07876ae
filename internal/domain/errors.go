package domain

import "errors"

// Domain errors
var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrSourceNotFound   = errors.New("source file not found")
	ErrNoTextContent    = errors.New("no text content found in PDF")
	ErrTooManyFiles     = errors.New("too many files")
	ErrInvalidFileName  = errors.New("invalid file name")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
