package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLanguage indicates a language with no suffix table entry.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Authentication Errors.

	// ErrAuthRequired indicates no access token is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAccessDenied indicates the token was rejected for a resource.
	ErrAccessDenied = errors.New("access denied")

	// Extraction Errors.

	// ErrInvalidUTF8 indicates decoded file content is not valid UTF-8.
	// This aborts the run.
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

	// ErrCloneFailed indicates a clone or checkout of a curated repository failed.
	ErrCloneFailed = errors.New("clone failed")
)
