package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no normaliser handles a file's MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Opinion titles are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Submission Errors.

	// ErrEmptyQuery indicates the input was blank and no file was attached.
	ErrEmptyQuery = errors.New("empty query")

	// ErrAlreadyPending indicates a query is already awaiting a response.
	ErrAlreadyPending = errors.New("a query is already pending")

	// ErrSearchFailed indicates the case match backend failed or returned
	// a malformed response.
	ErrSearchFailed = errors.New("search failed")

	// ErrStaleResponse indicates a response arrived for a request that was
	// superseded or cancelled. It is discarded without touching state.
	ErrStaleResponse = errors.New("stale response")

	// Selection Errors.

	// ErrInvalidSelection indicates a toggle with a negative index or
	// without a document URL.
	ErrInvalidSelection = errors.New("invalid selection")
)
