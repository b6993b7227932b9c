package sync

import (
	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/pkg/api"
)

// RemoteSnapshot is the decoded remote state.
type RemoteSnapshot struct {
	models.Snapshot

	// Files is the remote file listing used for orphan cleanup.
	Files map[string]*api.GistFile
	// Unreadable holds conflict ids of entities whose remote copy could not
	// be read. Their local copy is never touched by a merge.
	Unreadable map[string]bool
	Failures   []*EntityError
	// SettingsUnreadable is set when the settings file exists but failed to
	// decode; local settings, models and covers are then kept.
	SettingsUnreadable bool
}

func newRemoteSnapshot(files map[string]*api.GistFile) *RemoteSnapshot {
	if files == nil {
		files = map[string]*api.GistFile{}
	}
	return &RemoteSnapshot{
		Files:      files,
		Unreadable: make(map[string]bool),
	}
}

// files returns the remote listing, nil for a nil snapshot.
func (r *RemoteSnapshot) files() map[string]*api.GistFile {
	if r == nil {
		return nil
	}
	return r.Files
}

func (r *RemoteSnapshot) fail(entityType models.EntityType, id, file string, err error) {
	r.Failures = append(r.Failures, &EntityError{Type: entityType, ID: id, File: file, Err: err})
	r.Unreadable[models.ConflictID(entityType, id)] = true
}

// IsUnreadable reports whether the remote copy of an entity failed to decode.
func (r *RemoteSnapshot) IsUnreadable(entityType models.EntityType, id string) bool {
	if r == nil {
		return false
	}
	if r.SettingsUnreadable && entityType != models.EntityNovel {
		return true
	}
	return r.Unreadable[models.ConflictID(entityType, id)]
}

func novelIndex(novels []*models.Novel) map[string]*models.Novel {
	idx := make(map[string]*models.Novel, len(novels))
	for _, n := range novels {
		idx[n.ID] = n
	}
	return idx
}

func modelIndex(items []models.AIModelConfig) map[string]*models.AIModelConfig {
	idx := make(map[string]*models.AIModelConfig, len(items))
	for i := range items {
		idx[items[i].ID] = &items[i]
	}
	return idx
}

func coverIndex(items []models.CoverHistoryItem) map[string]*models.CoverHistoryItem {
	idx := make(map[string]*models.CoverHistoryItem, len(items))
	for i := range items {
		idx[items[i].ID] = &items[i]
	}
	return idx
}
