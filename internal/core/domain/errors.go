package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDocuments indicates an upload contained no documents.
	ErrNoDocuments = errors.New("at least one document is required")

	// ErrUnsupportedType indicates a file extension outside the allowlist.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates a document exceeds the per-file size cap.
	ErrFileTooLarge = errors.New("file exceeds size limit")

	// ErrLowQuality indicates OCR-derived text is too unreliable to act on.
	// Callers must reject the batch rather than emit a report.
	ErrLowQuality = errors.New("document quality is low")

	// ErrConfigInvalid indicates a malformed rule table or catalog entry.
	// Configuration is trusted deploy-time data, so loading fails loudly
	// instead of skipping bad entries.
	ErrConfigInvalid = errors.New("invalid configuration")
)
