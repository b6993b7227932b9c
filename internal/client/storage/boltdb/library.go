package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/novelsync/internal/client/storage"
	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/internal/naming"
)

var settingsKey = []byte(models.SettingsID)

// Snapshot returns all entities in key order.
func (s *Storage) Snapshot(ctx context.Context, withContent bool) (*models.Snapshot, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	snap := &models.Snapshot{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		novels, err := bucket(tx, bucketNovels)
		if err != nil {
			return err
		}
		chapters, err := bucket(tx, bucketChapters)
		if err != nil {
			return err
		}

		if err := novels.ForEach(func(k, v []byte) error {
			n := &models.Novel{}
			if err := json.Unmarshal(v, n); err != nil {
				return fmt.Errorf("failed to unmarshal novel %s: %w", k, err)
			}
			if withContent {
				if err := attachContent(chapters, n); err != nil {
					return err
				}
			}
			snap.Novels = append(snap.Novels, n)
			return nil
		}); err != nil {
			return err
		}

		aiModels, err := bucket(tx, bucketAIModels)
		if err != nil {
			return err
		}
		if err := aiModels.ForEach(func(k, v []byte) error {
			var m models.AIModelConfig
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal ai model %s: %w", k, err)
			}
			snap.AIModels = append(snap.AIModels, m)
			return nil
		}); err != nil {
			return err
		}

		covers, err := bucket(tx, bucketCovers)
		if err != nil {
			return err
		}
		if err := covers.ForEach(func(k, v []byte) error {
			var c models.CoverHistoryItem
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("failed to unmarshal cover %s: %w", k, err)
			}
			snap.Covers = append(snap.Covers, c)
			return nil
		}); err != nil {
			return err
		}

		settings, err := bucket(tx, bucketSettings)
		if err != nil {
			return err
		}
		if data := settings.Get(settingsKey); data != nil {
			snap.Settings = &models.AppSettings{}
			if err := json.Unmarshal(data, snap.Settings); err != nil {
				return fmt.Errorf("failed to unmarshal settings: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return snap, nil
}

// ReplaceAll atomically clears the entity buckets and stores snap in one transaction.
func (s *Storage) ReplaceAll(ctx context.Context, snap *models.Snapshot) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range entityBuckets {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return fmt.Errorf("failed to clear %s bucket: %w", name, err)
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}

		chapters, err := bucket(tx, bucketChapters)
		if err != nil {
			return err
		}
		referenced := make(map[string]struct{})
		for _, n := range snap.Novels {
			if err := putNovel(tx, chapters, n); err != nil {
				return err
			}
			for _, v := range n.Volumes {
				for _, ch := range v.Chapters {
					referenced[ch.ID] = struct{}{}
				}
			}
		}

		// Удаляем контент глав, на которые больше никто не ссылается
		var orphans [][]byte
		if err := chapters.ForEach(func(k, _ []byte) error {
			if _, ok := referenced[string(k)]; !ok {
				orphans = append(orphans, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range orphans {
			if err := chapters.Delete(k); err != nil {
				return fmt.Errorf("failed to delete content of %s: %w", k, err)
			}
		}

		aiModels := tx.Bucket(bucketAIModels)
		for i := range snap.AIModels {
			m := &snap.AIModels[i]
			if err := putJSON(aiModels, []byte(m.ID), m); err != nil {
				return err
			}
		}

		covers := tx.Bucket(bucketCovers)
		for i := range snap.Covers {
			c := &snap.Covers[i]
			if err := putJSON(covers, []byte(c.ID), c); err != nil {
				return err
			}
		}

		if snap.Settings != nil {
			if err := putJSON(tx.Bucket(bucketSettings), settingsKey, snap.Settings); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveNovel upserts a novel and the content of its loaded chapters
func (s *Storage) SaveNovel(ctx context.Context, novel *models.Novel) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if novel == nil {
		return fmt.Errorf("novel is nil")
	}
	if err := naming.ValidateID(novel.ID); err != nil {
		return fmt.Errorf("novel %q: %w", novel.ID, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		chapters, err := bucket(tx, bucketChapters)
		if err != nil {
			return err
		}
		return putNovel(tx, chapters, novel)
	})
}

// GetNovel returns a novel by id
func (s *Storage) GetNovel(ctx context.Context, id string, withContent bool) (*models.Novel, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	var novel *models.Novel

	err := s.db.View(func(tx *bbolt.Tx) error {
		novels, err := bucket(tx, bucketNovels)
		if err != nil {
			return err
		}
		data := novels.Get([]byte(id))
		if data == nil {
			return storage.ErrNovelNotFound
		}
		novel = &models.Novel{}
		if err := json.Unmarshal(data, novel); err != nil {
			return fmt.Errorf("failed to unmarshal novel: %w", err)
		}
		if withContent {
			return attachContent(tx.Bucket(bucketChapters), novel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return novel, nil
}

// DeleteNovel removes a novel and its chapter content
func (s *Storage) DeleteNovel(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		novels, err := bucket(tx, bucketNovels)
		if err != nil {
			return err
		}
		data := novels.Get([]byte(id))
		if data == nil {
			return storage.ErrNovelNotFound
		}
		var n models.Novel
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("failed to unmarshal novel: %w", err)
		}

		chapters := tx.Bucket(bucketChapters)
		for _, v := range n.Volumes {
			for _, ch := range v.Chapters {
				if err := chapters.Delete([]byte(ch.ID)); err != nil {
					return fmt.Errorf("failed to delete content of %s: %w", ch.ID, err)
				}
			}
		}
		return novels.Delete([]byte(id))
	})
}

// SaveAIModel upserts a model config
func (s *Storage) SaveAIModel(ctx context.Context, m *models.AIModelConfig) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if m == nil || m.ID == "" {
		return fmt.Errorf("ai model id cannot be empty")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketAIModels)
		if err != nil {
			return err
		}
		return putJSON(b, []byte(m.ID), m)
	})
}

// SaveSettings replaces the app settings
func (s *Storage) SaveSettings(ctx context.Context, settings *models.AppSettings) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if settings == nil {
		return fmt.Errorf("settings are nil")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketSettings)
		if err != nil {
			return err
		}
		return putJSON(b, settingsKey, settings)
	})
}

// SaveCover upserts a cover history item
func (s *Storage) SaveCover(ctx context.Context, c *models.CoverHistoryItem) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if c == nil || c.ID == "" {
		return fmt.Errorf("cover id cannot be empty")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketCovers)
		if err != nil {
			return err
		}
		return putJSON(b, []byte(c.ID), c)
	})
}

// putNovel stores the novel without content and its loaded chapter content separately.
func putNovel(tx *bbolt.Tx, chapters *bbolt.Bucket, n *models.Novel) error {
	if err := naming.ValidateID(n.ID); err != nil {
		return fmt.Errorf("novel %q: %w", n.ID, err)
	}
	for _, v := range n.Volumes {
		for _, ch := range v.Chapters {
			if !ch.HasContent() {
				continue
			}
			if err := putJSON(chapters, []byte(ch.ID), ch.Content); err != nil {
				return err
			}
		}
	}
	return putJSON(tx.Bucket(bucketNovels), []byte(n.ID), n.StripContent())
}

func attachContent(chapters *bbolt.Bucket, n *models.Novel) error {
	for i := range n.Volumes {
		for j := range n.Volumes[i].Chapters {
			ch := &n.Volumes[i].Chapters[j]
			data := chapters.Get([]byte(ch.ID))
			if data == nil {
				continue
			}
			if err := json.Unmarshal(data, &ch.Content); err != nil {
				return fmt.Errorf("failed to unmarshal content of %s: %w", ch.ID, err)
			}
			if ch.Content == nil {
				ch.Content = []models.Paragraph{}
			}
		}
	}
	return nil
}
