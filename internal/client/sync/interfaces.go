package sync

import (
	"context"

	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/pkg/api"
)

//go:generate moq -out remote_mock.go . RemoteClient
//go:generate moq -out store_mock.go . LocalStore ContentLoader ConfigStore

// RemoteClient is the part of the remote blob client used by the sync.
type RemoteClient interface {
	Get(ctx context.Context, id string) (*api.Gist, error)
	ResolveAll(ctx context.Context, g *api.Gist) (map[string]string, map[string]error)
	Write(ctx context.Context, id string, changes []gist.Change, progress gist.Progress) (*gist.WriteResult, error)
	Verify(ctx context.Context, id string, exp gist.Expectation) error
}

// LocalStore is the local entity store.
type LocalStore interface {
	Snapshot(ctx context.Context, withContent bool) (*models.Snapshot, error)
	ReplaceAll(ctx context.Context, snap *models.Snapshot) error
}

// ContentLoader looks up stored chapter content by chapter id.
// It returns storage.ErrContentNotFound when nothing is stored.
type ContentLoader interface {
	LoadChapterContent(ctx context.Context, chapterID string) ([]models.Paragraph, error)
}

// ConfigStore persists the sync bookkeeping.
type ConfigStore interface {
	GetSyncConfig(ctx context.Context) (*models.SyncConfig, error)
	SaveSyncConfig(ctx context.Context, cfg *models.SyncConfig) error
}

// Resolver supplies resolutions for detected conflicts.
type Resolver interface {
	Resolve(ctx context.Context, conflicts []models.Conflict) ([]models.Resolution, error)
}

// Compile-time check that the gist client satisfies RemoteClient
var _ RemoteClient = (*gist.Client)(nil)
