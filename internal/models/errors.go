package models

import "errors"

// Request and pipeline errors. The HTTP layer maps these to status codes.
var (
	ErrNoFileProvided = errors.New("no file provided")
	ErrEmptyFilename  = errors.New("no selected file")
	ErrIngestion      = errors.New("failed to parse document")
	ErrMissingQuery   = errors.New("missing query")
	ErrEmptyIndex     = errors.New("vector index is empty")
	ErrUpstream       = errors.New("upstream provider failure")
)
