package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iudanet/novelsync/internal/client/storage"
	"github.com/iudanet/novelsync/internal/models"
)

// MergeStats counts what a merge did.
type MergeStats struct {
	Added     int // remote-only entities added
	Updated   int // entities replaced by their remote copy
	KeptLocal int // local copies kept by resolution or retention rule
	Dropped   int // local-only entities treated as deleted remotely
	Preserved int // local copies kept because the remote copy was unreadable
	// ContentRecovered counts chapters the remote copy carries without
	// content, filled from local data.
	ContentRecovered int
}

type merger struct {
	loader   ContentLoader
	remote   *RemoteSnapshot
	choices  map[string]models.Choice
	lastSync time.Time
	stats    MergeStats
}

// Merge computes the final local state from the local snapshot, the remote
// snapshot and the user resolutions.
//
// For an entity on both sides the resolution decides; without one the
// remote copy wins, keeping the later edit time when the copies differ in
// nothing else. Choosing remote for a novel merges it structurally so that
// local chapter content survives a metadata-only remote copy.
// A local-only entity is kept when a resolution says local, dropped when a
// resolution says remote, and otherwise kept only if it was edited strictly
// after lastSync. Entities whose remote copy is unreadable keep their local copy.
func Merge(ctx context.Context, local *models.Snapshot, remote *RemoteSnapshot, resolutions []models.Resolution, lastSync time.Time, loader ContentLoader) (*models.Snapshot, MergeStats, error) {
	if local == nil {
		local = &models.Snapshot{}
	}
	if remote == nil {
		remote = newRemoteSnapshot(nil)
	}

	m := &merger{
		loader:   loader,
		remote:   remote,
		choices:  make(map[string]models.Choice, len(resolutions)),
		lastSync: lastSync,
	}
	for _, res := range resolutions {
		m.choices[res.ConflictID] = res.Choice
	}

	out := &models.Snapshot{}

	novels, err := m.mergeNovels(ctx, local.Novels, remote.Novels)
	if err != nil {
		return nil, m.stats, err
	}
	out.Novels = novels
	out.AIModels = m.mergeModels(local.AIModels, remote.AIModels)
	out.Covers = m.mergeCovers(local.Covers, remote.Covers)
	out.Settings = m.mergeSettings(local.Settings, remote.Settings)

	return out, m.stats, nil
}

func (m *merger) choice(t models.EntityType, id string) (models.Choice, bool) {
	c, ok := m.choices[models.ConflictID(t, id)]
	return c, ok
}

// keepLocalOnly decides the fate of an entity that exists only locally.
// An explicit resolution always overrides the timestamp rule.
func (m *merger) keepLocalOnly(t models.EntityType, id string, edited time.Time) bool {
	if m.remote.IsUnreadable(t, id) {
		m.stats.Preserved++
		return true
	}
	if c, ok := m.choice(t, id); ok {
		if c == models.ChoiceLocal {
			m.stats.KeptLocal++
			return true
		}
		m.stats.Dropped++
		return false
	}
	if edited.After(m.lastSync) {
		m.stats.KeptLocal++
		return true
	}
	m.stats.Dropped++
	return false
}

func (m *merger) mergeNovels(ctx context.Context, local, remote []*models.Novel) ([]*models.Novel, error) {
	localByID := novelIndex(local)
	remoteIDs := make(map[string]bool, len(remote))
	out := make([]*models.Novel, 0, len(remote)+len(local))

	for _, r := range remote {
		remoteIDs[r.ID] = true
		l := localByID[r.ID]

		resolved := false
		if l != nil {
			c, ok := m.choice(models.EntityNovel, r.ID)
			if c == models.ChoiceLocal {
				m.stats.KeptLocal++
				out = append(out, l.Clone())
				continue
			}
			resolved = ok
			m.stats.Updated++
		} else {
			m.stats.Added++
		}

		merged, err := m.mergeNovel(ctx, l, r)
		if err != nil {
			return nil, err
		}
		if l != nil && !resolved && l.LastEdited.After(merged.LastEdited) && sameNovel(l, r) {
			merged.LastEdited = l.LastEdited
		}
		out = append(out, merged)
	}

	for _, l := range local {
		if remoteIDs[l.ID] {
			continue
		}
		if m.keepLocalOnly(models.EntityNovel, l.ID, l.LastEdited) {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

// mergeNovel takes the structure and content of remote. A chapter the
// remote copy carries without content is filled from, in order: the
// matching local chapter in memory, the content store by the local chapter
// id, and the content store by the remote chapter id.
func (m *merger) mergeNovel(ctx context.Context, local, remote *models.Novel) (*models.Novel, error) {
	out := remote.Clone()
	idx := newChapterIndex(local)

	for vi := range out.Volumes {
		for ci := range out.Volumes[vi].Chapters {
			ch := &out.Volumes[vi].Chapters[ci]
			if ch.HasContent() {
				continue
			}
			lch := idx.match(ch)

			if lch != nil && lch.HasContent() {
				ch.Content = models.CloneContent(lch.Content)
				m.stats.ContentRecovered++
				continue
			}

			candidates := make([]string, 0, 2)
			if lch != nil {
				candidates = append(candidates, lch.ID)
			}
			if lch == nil || lch.ID != ch.ID {
				candidates = append(candidates, ch.ID)
			}

			// иначе глава остается без контента
			for _, id := range candidates {
				content, err := m.load(ctx, id)
				if err != nil {
					return nil, fmt.Errorf("novel %s: %w", remote.ID, err)
				}
				if content != nil {
					ch.Content = content
					m.stats.ContentRecovered++
					break
				}
			}
		}
	}
	return out, nil
}

// load returns nil content when nothing is stored for the chapter.
func (m *merger) load(ctx context.Context, chapterID string) ([]models.Paragraph, error) {
	if m.loader == nil || chapterID == "" {
		return nil, nil
	}
	content, err := m.loader.LoadChapterContent(ctx, chapterID)
	if errors.Is(err, storage.ErrContentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load content of chapter %s: %w", chapterID, err)
	}
	if content == nil {
		content = []models.Paragraph{}
	}
	return content, nil
}

func (m *merger) mergeModels(local, remote []models.AIModelConfig) []models.AIModelConfig {
	localByID := modelIndex(local)
	remoteIDs := make(map[string]bool, len(remote))
	out := make([]models.AIModelConfig, 0, len(remote)+len(local))

	for _, r := range remote {
		remoteIDs[r.ID] = true
		l, ok := localByID[r.ID]
		switch {
		case !ok:
			m.stats.Added++
			out = append(out, r)
		case m.choices[models.ConflictID(models.EntityAIModel, r.ID)] == models.ChoiceLocal:
			m.stats.KeptLocal++
			out = append(out, *l)
		default:
			m.stats.Updated++
			if _, resolved := m.choice(models.EntityAIModel, r.ID); !resolved && cmp.Equal(*l, r, compareOptions) {
				r.LastEdited = latest(l.LastEdited, r.LastEdited)
			}
			// API ключ не синхронизируется, оставляем локальный
			if r.APIKey == "" {
				r.APIKey = l.APIKey
			}
			out = append(out, r)
		}
	}

	for _, l := range local {
		if !remoteIDs[l.ID] && m.keepLocalOnly(models.EntityAIModel, l.ID, l.LastEdited) {
			out = append(out, l)
		}
	}
	return out
}

func (m *merger) mergeCovers(local, remote []models.CoverHistoryItem) []models.CoverHistoryItem {
	localByID := coverIndex(local)
	remoteIDs := make(map[string]bool, len(remote))
	out := make([]models.CoverHistoryItem, 0, len(remote)+len(local))

	for _, r := range remote {
		remoteIDs[r.ID] = true
		l, ok := localByID[r.ID]
		switch {
		case !ok:
			m.stats.Added++
			out = append(out, r)
		case m.choices[models.ConflictID(models.EntityCover, r.ID)] == models.ChoiceLocal:
			m.stats.KeptLocal++
			out = append(out, *l)
		default:
			m.stats.Updated++
			out = append(out, r)
		}
	}

	for _, l := range local {
		if !remoteIDs[l.ID] && m.keepLocalOnly(models.EntityCover, l.ID, l.AddedAt) {
			out = append(out, l)
		}
	}
	return out
}

func (m *merger) mergeSettings(local, remote *models.AppSettings) *models.AppSettings {
	switch {
	case remote != nil && local != nil:
		if c, _ := m.choice(models.EntitySettings, models.SettingsID); c == models.ChoiceLocal {
			m.stats.KeptLocal++
			return copySettings(local)
		}
		m.stats.Updated++
		out := copySettings(remote)
		if _, resolved := m.choice(models.EntitySettings, models.SettingsID); !resolved && cmp.Equal(*local, *remote, compareOptions) {
			out.LastEdited = latest(local.LastEdited, remote.LastEdited)
		}
		return out
	case remote != nil:
		m.stats.Added++
		return copySettings(remote)
	case local != nil:
		if m.keepLocalOnly(models.EntitySettings, models.SettingsID, local.LastEdited) {
			return copySettings(local)
		}
		return nil
	default:
		return nil
	}
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func copySettings(s *models.AppSettings) *models.AppSettings {
	cp := *s
	return &cp
}

// chapterIndex finds the local counterpart of a remote chapter by id, then
// by original URL, then by title.
type chapterIndex struct {
	byID    map[string]*models.Chapter
	byURL   map[string]*models.Chapter
	byTitle map[string]*models.Chapter
}

func newChapterIndex(n *models.Novel) *chapterIndex {
	idx := &chapterIndex{
		byID:    map[string]*models.Chapter{},
		byURL:   map[string]*models.Chapter{},
		byTitle: map[string]*models.Chapter{},
	}
	if n == nil {
		return idx
	}
	for vi := range n.Volumes {
		for ci := range n.Volumes[vi].Chapters {
			ch := &n.Volumes[vi].Chapters[ci]
			if _, ok := idx.byID[ch.ID]; !ok && ch.ID != "" {
				idx.byID[ch.ID] = ch
			}
			if _, ok := idx.byURL[ch.OriginalURL]; !ok && ch.OriginalURL != "" {
				idx.byURL[ch.OriginalURL] = ch
			}
			if _, ok := idx.byTitle[ch.Title]; !ok && ch.Title != "" {
				idx.byTitle[ch.Title] = ch
			}
		}
	}
	return idx
}

func (idx *chapterIndex) match(ch *models.Chapter) *models.Chapter {
	if l, ok := idx.byID[ch.ID]; ok {
		return l
	}
	if l, ok := idx.byURL[ch.OriginalURL]; ok && ch.OriginalURL != "" {
		return l
	}
	if l, ok := idx.byTitle[ch.Title]; ok && ch.Title != "" {
		return l
	}
	return nil
}
