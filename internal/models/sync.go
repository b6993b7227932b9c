package models

import (
	"fmt"
	"time"
)

// EntityType names a kind of syncable entity.
type EntityType string

const (
	EntityNovel    EntityType = "novel"
	EntityAIModel  EntityType = "ai_model"
	EntitySettings EntityType = "settings"
	EntityCover    EntityType = "cover"
)

// Choice is the side picked by a Resolution.
type Choice string

const (
	ChoiceLocal  Choice = "local"
	ChoiceRemote Choice = "remote"
)

// Valid reports whether c is one of the known choices.
func (c Choice) Valid() bool {
	return c == ChoiceLocal || c == ChoiceRemote
}

// SyncConfig is the persistent sync bookkeeping of the local app.
// RemoteID is assigned by the remote store on creation and never chosen by us.
type SyncConfig struct {
	LastSyncTime        time.Time     `json:"lastSyncTime"` // LastSyncTime обновляется только после полностью успешной синхронизации
	RemoteID            string        `json:"remoteId,omitempty"`
	Username            string        `json:"username,omitempty"`
	LastSyncedEntityIDs []string      `json:"lastSyncedEntityIds,omitempty"`
	SyncInterval        time.Duration `json:"syncInterval"`
	Enabled             bool          `json:"enabled"`
}

// DefaultSyncInterval is used when SyncConfig.SyncInterval is not set.
const DefaultSyncInterval = 5 * time.Minute

// DefaultSyncConfig returns the config created on first load.
func DefaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		Enabled:      false,
		SyncInterval: DefaultSyncInterval,
	}
}

// HasSynced reports whether at least one sync has completed.
func (c *SyncConfig) HasSynced() bool {
	return !c.LastSyncTime.IsZero()
}

// Conflict describes an entity edited differently on both sides.
type Conflict struct {
	LocalEdited  time.Time  `json:"localEdited"`
	RemoteEdited time.Time  `json:"remoteEdited"`
	Local        any        `json:"local"`
	Remote       any        `json:"remote"`
	ID           string     `json:"id"`
	EntityID     string     `json:"entityId"`
	EntityType   EntityType `json:"entityType"`
	Title        string     `json:"title,omitempty"`
	Suggested    Choice     `json:"suggested"`
	// LocalChanged / RemoteChanged tell whether the side was edited after the last sync
	LocalChanged  bool `json:"localChanged"`
	RemoteChanged bool `json:"remoteChanged"`
}

// ConflictID builds the deterministic id of a conflict for an entity.
func ConflictID(entityType EntityType, entityID string) string {
	return fmt.Sprintf("%s:%s", entityType, entityID)
}

// Resolution is the user's choice for a conflict.
type Resolution struct {
	ConflictID string `json:"conflictId"`
	Choice     Choice `json:"choice"`
}
