// Package service provides the application-level document extraction service.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

// ExtractionServiceError wraps errors from the extraction service with context.
type ExtractionServiceError struct {
	// Operation is the step that failed (e.g., "save_upload", "load_document")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ExtractionServiceError.
func (e *ExtractionServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("extraction service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ExtractionServiceError) Unwrap() error {
	return e.Err
}

// NewExtractionServiceError creates a new ExtractionServiceError.
// Upload sentinels that callers report verbatim are returned without wrapping.
func NewExtractionServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrEmptyUpload):
		return domain.ErrEmptyUpload
	case errors.Is(err, domain.ErrUploadTooLarge):
		return domain.ErrUploadTooLarge
	}

	return &ExtractionServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
