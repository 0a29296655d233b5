package ingestion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for file types no extractor handles
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrTooLarge is returned for uploads above the configured size limit
var ErrTooLarge = errors.New("document exceeds size limit")

// ExtractionError represents a document that could not be turned into text
type ExtractionError struct {
	Source string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s", e.Source)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
