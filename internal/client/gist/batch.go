package gist

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/novelsync/pkg/api"
)

// Change is a named file change. Writes keep the order of the slice.
type Change struct {
	Name   string
	Change api.FileChange
}

// Progress is called after every applied batch.
type Progress func(done, total int)

// WriteResult describes a write. A failed create still returns the new
// id together with the error, so the caller can keep it.
type WriteResult struct {
	ID      string
	Batches int
}

// batches splits changes into consecutive groups of at most size entries.
func batches(changes []Change, size int) [][]Change {
	var out [][]Change
	for start := 0; start < len(changes); start += size {
		end := start + size
		if end > len(changes) {
			end = len(changes)
		}
		out = append(out, changes[start:end])
	}
	return out
}

func toMap(changes []Change) map[string]api.FileChange {
	m := make(map[string]api.FileChange, len(changes))
	for _, ch := range changes {
		m[ch.Name] = ch.Change
	}
	return m
}

// UpdateBatched applies changes with sequential update calls of at most
// BatchSize files each. The first failing batch aborts the operation and
// the remaining batches are not sent.
func (c *Client) UpdateBatched(ctx context.Context, id string, changes []Change, progress Progress) (int, error) {
	if err := checkID(id); err != nil {
		return 0, err
	}
	groups := batches(changes, c.batchSize)

	for i, group := range groups {
		if _, err := c.Update(ctx, id, toMap(group)); err != nil {
			c.logger.Warn("update batch failed",
				"batch", i+1,
				"total", len(groups),
				"error", err)
			return i, &BatchError{Err: err, Batch: i + 1, Total: len(groups), Applied: i}
		}
		c.logger.Debug("update batch applied", "batch", i+1, "total", len(groups), "files", len(group))
		if progress != nil {
			progress(i+1, len(groups))
		}
	}
	return len(groups), nil
}

// Write stores changes in the gist id. When id is empty a new gist is
// created. When the gist no longer exists or is not accessible the write
// fails with ErrRecreateRequired: changes are a diff against the old gist
// and would leave a new one incomplete. Write conflicts are returned as
// ErrWriteConflict without any retry.
func (c *Client) Write(ctx context.Context, id string, changes []Change, progress Progress) (*WriteResult, error) {
	if id == "" {
		return c.createBatched(ctx, changes, progress)
	}

	n, err := c.UpdateBatched(ctx, id, changes, progress)
	if err == nil {
		return &WriteResult{ID: id, Batches: n}, nil
	}

	if errors.Is(err, ErrWriteConflict) {
		return nil, fmt.Errorf("remote was changed by another device, download and resolve before uploading: %w", err)
	}
	if errors.Is(err, ErrNotFoundOrForbidden) {
		c.logger.Warn("gist is gone or inaccessible", "gist_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRecreateRequired, err)
	}
	return nil, err
}

// createBatched creates a gist from the first batch of upserts and adds the
// rest with sequential updates. Delete markers are meaningless for a new gist.
// When a later batch fails, the result still carries the id of the created gist.
func (c *Client) createBatched(ctx context.Context, changes []Change, progress Progress) (*WriteResult, error) {
	upserts := make([]Change, 0, len(changes))
	for _, ch := range changes {
		if !ch.Change.IsDelete() {
			upserts = append(upserts, ch)
		}
	}
	if len(upserts) == 0 {
		return nil, fmt.Errorf("create gist: nothing to write")
	}

	groups := batches(upserts, c.batchSize)
	g, err := c.Create(ctx, toMap(groups[0]))
	if err != nil {
		return nil, &BatchError{Err: err, Batch: 1, Total: len(groups)}
	}
	c.logger.Info("created gist", "gist_id", g.ID)
	if progress != nil {
		progress(1, len(groups))
	}

	for i, group := range groups[1:] {
		if _, err := c.Update(ctx, g.ID, toMap(group)); err != nil {
			c.logger.Warn("new gist is incomplete", "gist_id", g.ID, "batch", i+2, "total", len(groups), "error", err)
			return &WriteResult{ID: g.ID, Batches: i + 1},
				&BatchError{Err: err, Batch: i + 2, Total: len(groups), Applied: i + 1}
		}
		if progress != nil {
			progress(i+2, len(groups))
		}
	}
	return &WriteResult{ID: g.ID, Batches: len(groups)}, nil
}
