package gist

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error taxonomy of the remote store.
var (
	// ErrConfig indicates missing or empty credentials or gist id.
	// Returned before any network call is made.
	ErrConfig = errors.New("invalid remote configuration")

	// ErrAuth indicates that the token was rejected.
	ErrAuth = errors.New("authentication rejected by remote")

	// ErrNotFoundOrForbidden indicates that the gist does not exist or is not accessible.
	ErrNotFoundOrForbidden = errors.New("gist not found or access forbidden")

	// ErrWriteConflict indicates the gist was modified concurrently.
	ErrWriteConflict = errors.New("gist was modified concurrently")

	// ErrRateLimited indicates that the API rate limit is exhausted.
	ErrRateLimited = errors.New("remote rate limit exceeded")

	// ErrRecreateRequired indicates that an update hit a missing or
	// inaccessible gist. The caller must write the full file set into a
	// new gist, since a diff against the old one is meaningless there.
	ErrRecreateRequired = errors.New("gist must be recreated from the full file set")

	// ErrTruncatedUnrecoverable indicates that a truncated file could not be fetched in full.
	ErrTruncatedUnrecoverable = errors.New("truncated file content could not be recovered")
)

// APIError is a non-2xx response of the remote API.
type APIError struct {
	Op         string
	Message    string
	StatusCode int
	RateLimit  bool
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: remote error (%d): %s", e.Op, e.StatusCode, msg)
}

// Unwrap maps the status code onto the error taxonomy.
func (e *APIError) Unwrap() error {
	switch {
	case e.RateLimit:
		return ErrRateLimited
	case e.StatusCode == http.StatusUnauthorized:
		return ErrAuth
	case e.StatusCode == http.StatusNotFound, e.StatusCode == http.StatusForbidden:
		return ErrNotFoundOrForbidden
	case e.StatusCode == http.StatusConflict:
		return ErrWriteConflict
	default:
		return nil
	}
}

// Temporary reports whether a retry may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// BatchError is returned when one of the sequential update batches failed.
// Batches before Batch were applied, batches after it were not sent.
type BatchError struct {
	Err     error
	Batch   int // 1-based
	Total   int
	Applied int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("update batch %d/%d failed (%d applied, remaining not sent): %v",
		e.Batch, e.Total, e.Applied, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// VerificationError is returned when a write succeeded but the remote
// state does not match what was written.
type VerificationError struct {
	Problems []string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("post-write verification failed: %s", strings.Join(e.Problems, "; "))
}
