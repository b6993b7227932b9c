package sync

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/iudanet/novelsync/internal/models"
)

// volatile fields never make two copies differ
var compareOptions = cmp.Options{
	cmpopts.IgnoreFields(models.Novel{}, "LastEdited"),
	cmpopts.IgnoreFields(models.AIModelConfig{}, "LastEdited", "APIKey"),
	cmpopts.IgnoreFields(models.AppSettings{}, "LastEdited"),
	cmpopts.IgnoreFields(models.CoverHistoryItem{}, "AddedAt"),
	cmpopts.EquateEmpty(),
}

// DetectConflicts compares entities present on both sides. Copies that are
// equal after ignoring volatile fields are not conflicts, whatever their
// timestamps. Entities present on one side only are never conflicts.
// Chapter content is compared only where both sides carry it.
func DetectConflicts(local, remote *models.Snapshot, lastSync time.Time) []models.Conflict {
	if local == nil || remote == nil {
		return nil
	}
	var conflicts []models.Conflict

	remoteNovels := novelIndex(remote.Novels)
	for _, l := range local.Novels {
		r, ok := remoteNovels[l.ID]
		if !ok {
			continue
		}
		if sameNovel(l, r) {
			continue
		}
		title := r.Title
		if title == "" {
			title = l.Title
		}
		conflicts = append(conflicts, newConflict(models.EntityNovel, l.ID, title,
			l.LastEdited, r.LastEdited, l, r, lastSync))
	}

	remoteModels := modelIndex(remote.AIModels)
	for i := range local.AIModels {
		l := &local.AIModels[i]
		r, ok := remoteModels[l.ID]
		if !ok || cmp.Equal(*l, *r, compareOptions) {
			continue
		}
		conflicts = append(conflicts, newConflict(models.EntityAIModel, l.ID, l.Name,
			l.LastEdited, r.LastEdited, l, r, lastSync))
	}

	remoteCovers := coverIndex(remote.Covers)
	for i := range local.Covers {
		l := &local.Covers[i]
		r, ok := remoteCovers[l.ID]
		if !ok || cmp.Equal(*l, *r, compareOptions) {
			continue
		}
		conflicts = append(conflicts, newConflict(models.EntityCover, l.ID, l.NovelTitle,
			l.AddedAt, r.AddedAt, l, r, lastSync))
	}

	if local.Settings != nil && remote.Settings != nil && !cmp.Equal(*local.Settings, *remote.Settings, compareOptions) {
		conflicts = append(conflicts, newConflict(models.EntitySettings, models.SettingsID, "Settings",
			local.Settings.LastEdited, remote.Settings.LastEdited, local.Settings, remote.Settings, lastSync))
	}

	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].ID < conflicts[j].ID })
	return conflicts
}

func newConflict(t models.EntityType, id, title string, localEdited, remoteEdited time.Time, local, remote any, lastSync time.Time) models.Conflict {
	suggested := models.ChoiceRemote
	if localEdited.After(remoteEdited) {
		suggested = models.ChoiceLocal
	}
	return models.Conflict{
		ID:            models.ConflictID(t, id),
		EntityID:      id,
		EntityType:    t,
		Title:         title,
		LocalEdited:   localEdited,
		RemoteEdited:  remoteEdited,
		Local:         local,
		Remote:        remote,
		Suggested:     suggested,
		LocalChanged:  lastSync.IsZero() || localEdited.After(lastSync),
		RemoteChanged: lastSync.IsZero() || remoteEdited.After(lastSync),
	}
}

// sameNovel reports whether two copies of a novel carry the same payload.
func sameNovel(l, r *models.Novel) bool {
	lc, rc := comparableNovels(l, r)
	return cmp.Equal(lc, rc, compareOptions)
}

// comparableNovels returns copies where chapter content is dropped from
// every chapter that lacks content on either side.
func comparableNovels(l, r *models.Novel) (*models.Novel, *models.Novel) {
	lc, rc := l.Clone(), r.Clone()

	remoteHas := make(map[string]bool)
	for _, v := range rc.Volumes {
		for _, ch := range v.Chapters {
			remoteHas[ch.ID] = ch.HasContent()
		}
	}
	localHas := make(map[string]bool)
	for vi := range lc.Volumes {
		for ci := range lc.Volumes[vi].Chapters {
			ch := &lc.Volumes[vi].Chapters[ci]
			localHas[ch.ID] = ch.HasContent()
			if !remoteHas[ch.ID] {
				ch.Content = nil
			}
		}
	}
	for vi := range rc.Volumes {
		for ci := range rc.Volumes[vi].Chapters {
			ch := &rc.Volumes[vi].Chapters[ci]
			if !localHas[ch.ID] {
				ch.Content = nil
			}
		}
	}
	return lc, rc
}

// ValidateResolutions checks that every conflict has a valid resolution.
func ValidateResolutions(conflicts []models.Conflict, resolutions []models.Resolution) error {
	byID := make(map[string]models.Choice, len(resolutions))
	for _, res := range resolutions {
		if !res.Choice.Valid() {
			return fmt.Errorf("%w: invalid choice %q for %s", ErrUnresolvedConflicts, res.Choice, res.ConflictID)
		}
		byID[res.ConflictID] = res.Choice
	}
	var missing []string
	for _, c := range conflicts {
		if _, ok := byID[c.ID]; !ok {
			missing = append(missing, c.ID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnresolvedConflicts, strings.Join(missing, ", "))
	}
	return nil
}
