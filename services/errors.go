package services

import "errors"

// Common service-level errors
var (
	// Validation errors
	ErrEmptyTitle = errors.New("title is required and cannot be empty")
	ErrEmptyQuery = errors.New("search query is required")

	// State errors
	ErrNoteNotFound = errors.New("note not found")
	ErrNoteDeleted  = errors.New("note has been deleted")
)
