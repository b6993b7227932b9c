package storage

import (
	"context"

	"github.com/iudanet/novelsync/internal/models"
)

// LibraryStorage holds the syncable entities of the local app.
// Novels are stored without chapter content; content lives in ContentStorage.
type LibraryStorage interface {
	// Snapshot returns every entity. With withContent the chapter content
	// is attached where stored; otherwise every chapter has nil content.
	Snapshot(ctx context.Context, withContent bool) (*models.Snapshot, error)

	// ReplaceAll atomically clears the entity buckets and stores snap.
	// Non-nil chapter content is stored, content of chapters that are no
	// longer referenced is removed, and stored content of chapters whose
	// content is nil in snap is kept.
	ReplaceAll(ctx context.Context, snap *models.Snapshot) error

	// SaveNovel upserts a novel and the content of its loaded chapters
	SaveNovel(ctx context.Context, novel *models.Novel) error

	// GetNovel returns a novel, with content when withContent is set.
	// Returns ErrNovelNotFound if it doesn't exist
	GetNovel(ctx context.Context, id string, withContent bool) (*models.Novel, error)

	// DeleteNovel removes a novel and its chapter content
	DeleteNovel(ctx context.Context, id string) error

	// SaveAIModel upserts a model config
	SaveAIModel(ctx context.Context, m *models.AIModelConfig) error

	// SaveSettings replaces the app settings
	SaveSettings(ctx context.Context, s *models.AppSettings) error

	// SaveCover upserts a cover history item
	SaveCover(ctx context.Context, c *models.CoverHistoryItem) error
}

// ContentStorage is the key-value lookup of chapter content by chapter id.
type ContentStorage interface {
	// LoadChapterContent returns ErrContentNotFound when nothing is stored.
	LoadChapterContent(ctx context.Context, chapterID string) ([]models.Paragraph, error)

	// SaveChapterContent stores content for a chapter
	SaveChapterContent(ctx context.Context, chapterID string, content []models.Paragraph) error

	// ContentStats returns the number of stored chapters and their total size in bytes
	ContentStats(ctx context.Context) (chapters int, bytes int64, err error)
}
