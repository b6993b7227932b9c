package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no credentials are stored
	ErrAuthNotFound = errors.New("credentials not found")

	// ErrNovelNotFound indicates that the novel was not found
	ErrNovelNotFound = errors.New("novel not found")

	// ErrContentNotFound indicates that no content is stored for the chapter
	ErrContentNotFound = errors.New("chapter content not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
