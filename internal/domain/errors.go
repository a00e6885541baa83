// Package domain defines the core business entities and errors.
package domain

import "errors"

// Errors returned across the extraction pipeline. Callers wrap them with
// context and match them with errors.Is.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTaskNumber is returned when a task number is not of the
	// form D{1,2}.D{1,2}.
	ErrInvalidTaskNumber = errors.New("invalid task number")

	// ErrLoad is returned when a document cannot be opened or its text
	// layer cannot be read. The extractor is never invoked in that case.
	ErrLoad = errors.New("document load failed")

	// ErrProcessing is returned for any unexpected fault while scanning
	// page text. No partial result accompanies it.
	ErrProcessing = errors.New("task processing failed")

	// ErrUpload is returned when an uploaded document cannot be persisted
	// to its transient location.
	ErrUpload = errors.New("upload persistence failed")

	// ErrEmptyUpload is returned when an upload carries no bytes.
	ErrEmptyUpload = errors.New("uploaded document is empty")

	// ErrUploadTooLarge is returned when an upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("uploaded document too large")
)
