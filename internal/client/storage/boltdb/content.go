package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/novelsync/internal/client/storage"
	"github.com/iudanet/novelsync/internal/models"
)

// LoadChapterContent returns the stored content of a chapter
func (s *Storage) LoadChapterContent(ctx context.Context, chapterID string) ([]models.Paragraph, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	var content []models.Paragraph

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketChapters)
		if err != nil {
			return err
		}
		data := b.Get([]byte(chapterID))
		if data == nil {
			return storage.ErrContentNotFound
		}
		if err := json.Unmarshal(data, &content); err != nil {
			return fmt.Errorf("failed to unmarshal content of %s: %w", chapterID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if content == nil {
		content = []models.Paragraph{}
	}
	return content, nil
}

// SaveChapterContent stores the content of a chapter
func (s *Storage) SaveChapterContent(ctx context.Context, chapterID string, content []models.Paragraph) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if chapterID == "" {
		return fmt.Errorf("chapter id cannot be empty")
	}
	if content == nil {
		content = []models.Paragraph{}
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketChapters)
		if err != nil {
			return err
		}
		return putJSON(b, []byte(chapterID), content)
	})
}

// ContentStats returns the number of stored chapters and their size
func (s *Storage) ContentStats(ctx context.Context) (int, int64, error) {
	if s.db == nil {
		return 0, 0, storage.ErrStorageClosed
	}
	var (
		count int
		size  int64
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketChapters)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			count++
			size += int64(len(v))
			return nil
		})
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read content stats: %w", err)
	}
	return count, size, nil
}
