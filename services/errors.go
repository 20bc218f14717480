package services

import "errors"

// Common service-level errors
var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrSessionNotFound = errors.New("deep dive session not found")
)
