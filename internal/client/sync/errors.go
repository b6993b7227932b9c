package sync

import (
	"errors"
	"fmt"

	"github.com/iudanet/novelsync/internal/models"
)

var (
	// ErrSyncInProgress is returned when another sync session is active.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNoRemoteID is returned by operations that need an existing remote
	// when none is configured. No network call is made.
	ErrNoRemoteID = errors.New("no remote id configured")

	// ErrUnresolvedConflicts is returned when resolutions do not cover every conflict.
	ErrUnresolvedConflicts = errors.New("conflicts require a resolution")

	// ErrParse indicates that a remote entity could not be decoded.
	ErrParse = errors.New("failed to parse remote entity")

	// ErrIncompleteChunks indicates missing chunk files of a chunked entity.
	ErrIncompleteChunks = errors.New("chunk files are incomplete")
)

// EntityError is a failure of a single remote entity. The entity is
// skipped and the rest of the sync continues.
type EntityError struct {
	Err  error
	Type models.EntityType
	ID   string
	File string
}

func (e *EntityError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Type, e.ID, e.File, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Type, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
