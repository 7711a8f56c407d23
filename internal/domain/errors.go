package domain

import "errors"

var (
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("collection not found")
	// ErrValidation signals a malformed request.
	ErrValidation = errors.New("validation failed")
	// ErrBackend signals a failure reported by the search backend.
	ErrBackend = errors.New("backend error")
)
