package storage

import (
	"context"

	"github.com/iudanet/novelsync/internal/models"
)

// SyncConfigStorage persists the sync bookkeeping.
type SyncConfigStorage interface {
	// GetSyncConfig returns the stored config. On first load a default
	// config is created and stored.
	GetSyncConfig(ctx context.Context) (*models.SyncConfig, error)

	// SaveSyncConfig replaces the stored config
	SaveSyncConfig(ctx context.Context, cfg *models.SyncConfig) error
}
