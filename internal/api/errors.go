package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-extract-api/internal/api/shared"
	"github.com/phrazzld/task-extract-api/internal/domain"
)

// Client-facing error messages.
const (
	MsgNoFile       = "No file uploaded"
	MsgEmptyFile    = "Uploaded file is empty"
	MsgFileTooLarge = "Uploaded file is too large"
	MsgSaveFailed   = "Failed to save uploaded file"
	MsgReadFailed   = "Failed to read document"
	MsgProcessing   = "Processing error"
	MsgUnexpected   = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types or messages to
// clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	// Bad request errors
	case errors.Is(err, shared.ErrMissingFile),
		errors.Is(err, domain.ErrEmptyUpload):
		return http.StatusBadRequest

	// Size limit, either from the service or the body limit middleware
	case errors.Is(err, domain.ErrUploadTooLarge),
		errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	// Unreadable documents
	case errors.Is(err, domain.ErrLoad):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, shared.ErrMissingFile):
		return MsgNoFile
	case errors.Is(err, domain.ErrEmptyUpload):
		return MsgEmptyFile
	case errors.Is(err, domain.ErrUploadTooLarge),
		errors.As(err, &maxBytesErr):
		return MsgFileTooLarge
	case errors.Is(err, domain.ErrUpload):
		return MsgSaveFailed
	case errors.Is(err, domain.ErrLoad):
		return MsgReadFailed
	default:
		return MsgProcessing
	}
}
