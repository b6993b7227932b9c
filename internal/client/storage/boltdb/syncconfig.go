package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/novelsync/internal/client/storage"
	"github.com/iudanet/novelsync/internal/models"
)

var syncConfigKey = []byte("config")

// GetSyncConfig returns the stored sync config.
// Если конфиг еще не сохранялся, создается и сохраняется конфиг по умолчанию
func (s *Storage) GetSyncConfig(ctx context.Context) (*models.SyncConfig, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	var cfg *models.SyncConfig

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketSyncConfig)
		if err != nil {
			return err
		}

		data := b.Get(syncConfigKey)
		if data == nil {
			cfg = models.DefaultSyncConfig()
			return putJSON(b, syncConfigKey, cfg)
		}

		cfg = &models.SyncConfig{}
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to unmarshal sync config: %w", err)
		}
		if cfg.SyncInterval <= 0 {
			cfg.SyncInterval = models.DefaultSyncInterval
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sync config: %w", err)
	}

	return cfg, nil
}

// SaveSyncConfig replaces the stored sync config
func (s *Storage) SaveSyncConfig(ctx context.Context, cfg *models.SyncConfig) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if cfg == nil {
		return fmt.Errorf("sync config is nil")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketSyncConfig)
		if err != nil {
			return err
		}
		return putJSON(b, syncConfigKey, cfg)
	})
}

func putJSON(b *bbolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := b.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
