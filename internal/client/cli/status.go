package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/iudanet/novelsync/internal/client/storage"
)

type statusView struct {
	Account        string
	RemoteID       string
	LastSync       string
	Interval       string
	State          string
	ContentSize    string
	Novels         int
	Chapters       int
	StoredChapters int
	Models         int
	Covers         int
	HasSettings    bool
}

func (c *Cli) runStatus(ctx context.Context) error {
	view := statusView{}

	switch username, err := c.vault.Username(ctx); {
	case c.cfg.Token != "":
		view.Account = fmt.Sprintf("%s (token from environment)", c.cfg.Remote.Username)
	case err == nil:
		view.Account = fmt.Sprintf("%s (token stored encrypted)", username)
	case errors.Is(err, storage.ErrAuthNotFound):
		view.Account = "not logged in"
	default:
		return fmt.Errorf("failed to check credentials: %w", err)
	}

	cfg, err := c.library.GetSyncConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync config: %w", err)
	}
	view.RemoteID = cfg.RemoteID
	view.LastSync = when(cfg.LastSyncTime, c.now())
	view.Interval = cfg.SyncInterval.String()
	if c.syncService != nil && c.syncService.IsSyncing() {
		view.State = c.syncService.State().String()
	}

	snap, err := c.library.Snapshot(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to read library: %w", err)
	}
	view.Novels = len(snap.Novels)
	for _, n := range snap.Novels {
		view.Chapters += n.ChapterCount()
	}
	view.Models = len(snap.AIModels)
	view.Covers = len(snap.Covers)
	view.HasSettings = snap.Settings != nil

	stored, size, err := c.library.ContentStats(ctx)
	if err != nil {
		return err
	}
	view.StoredChapters = stored
	view.ContentSize = humanize.Bytes(uint64(size))

	return c.render("status", statusTemplate, view)
}
