package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/models"
)

func TestStorage_SyncConfig(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Первый запрос создает конфиг по умолчанию
	cfg, err := store.GetSyncConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSyncConfig(), cfg)
	assert.False(t, cfg.HasSynced())

	cfg.RemoteID = "aa5a315d61ae9438b18d"
	cfg.LastSyncTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg.LastSyncedEntityIDs = []string{"novel:n1"}
	cfg.Enabled = true
	require.NoError(t, store.SaveSyncConfig(ctx, cfg))

	got, err := store.GetSyncConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.True(t, got.HasSynced())

	assert.Error(t, store.SaveSyncConfig(ctx, nil))
}

func TestStorage_SyncConfig_DefaultsInterval(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSyncConfig(ctx, &models.SyncConfig{Enabled: true}))

	got, err := store.GetSyncConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSyncInterval, got.SyncInterval)
}
