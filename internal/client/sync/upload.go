package sync

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iudanet/novelsync/internal/chunk"
	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/internal/naming"
	"github.com/iudanet/novelsync/pkg/api"
)

// PlanOptions control how entities are encoded into files.
type PlanOptions struct {
	// MaxFileBytes is the single-file limit and the chunk size; chunk.DefaultMaxBytes if zero.
	MaxFileBytes int
	// Compress wraps every payload into a gzip envelope.
	Compress bool
	// Tolerance of the post-write size check; gist.DefaultTolerance if zero.
	Tolerance float64
	// Preserve holds conflict ids of entities whose remote files must be
	// left untouched, neither rewritten nor deleted.
	Preserve map[string]bool
}

// UploadPlan is the ordered list of file changes of one upload.
type UploadPlan struct {
	Expectation gist.Expectation
	Changes     []gist.Change
	// Unchanged counts files skipped because the remote already holds the same content.
	Unchanged int
	Upserts   int
	Deletes   int
}

// Empty reports whether the plan writes nothing.
func (p *UploadPlan) Empty() bool {
	return len(p.Changes) == 0
}

// BuildUploadPlan encodes snap into remote files.
//
// Every novel becomes either one file or a set of chunks plus a metadata
// file. Files of our naming scheme that exist remotely but are not part of
// the new shape (deleted novels, a changed shape, fewer chunks, legacy
// chunk names) are deleted in the same upload. Changes are ordered chunks,
// entity files, metadata, settings, deletes.
func BuildUploadPlan(snap *models.Snapshot, remote map[string]*api.GistFile, opts PlanOptions) (*UploadPlan, error) {
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = chunk.DefaultMaxBytes
	}

	var chunks, entities, metas, settings []gist.Change
	written := make(map[string]bool)
	plan := &UploadPlan{
		Expectation: gist.Expectation{
			Files:     make(map[string]int),
			Chunked:   make(map[string]int),
			Tolerance: opts.Tolerance,
		},
	}

	add := func(group *[]gist.Change, name, content string) {
		written[name] = true
		plan.Expectation.Files[name] = len(content)
		if f, ok := remote[name]; ok && f.HasContent() && *f.Content == content {
			plan.Unchanged++
			return
		}
		*group = append(*group, gist.Change{Name: name, Change: api.Upsert(content)})
	}

	novels := append([]*models.Novel(nil), snap.Novels...)
	sort.Slice(novels, func(i, j int) bool { return novels[i].ID < novels[j].ID })

	for _, n := range novels {
		if opts.Preserve[models.ConflictID(models.EntityNovel, n.ID)] {
			continue
		}
		if err := naming.ValidateID(n.ID); err != nil {
			return nil, fmt.Errorf("novel %q: %w", n.ID, err)
		}
		payload, err := encodePayload(n, opts.Compress)
		if err != nil {
			return nil, fmt.Errorf("novel %s: %w", n.ID, err)
		}

		if len(payload) <= maxBytes {
			add(&entities, naming.EntityFile(n.ID), payload)
			continue
		}

		set, err := chunk.Encode(payload, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("novel %s: %w", n.ID, err)
		}
		for i, part := range set.Chunks {
			add(&chunks, naming.ChunkFile(n.ID, i), part)
		}
		meta, err := json.Marshal(set.Metadata)
		if err != nil {
			return nil, fmt.Errorf("novel %s: failed to marshal metadata: %w", n.ID, err)
		}
		add(&metas, naming.MetadataFile(n.ID), string(meta))
		plan.Expectation.Chunked[n.ID] = set.Metadata.Chunks
	}

	if !opts.Preserve[models.ConflictID(models.EntitySettings, models.SettingsID)] {
		settingsPayload, err := encodePayload(settingsFor(snap), opts.Compress)
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		if len(settingsPayload) > maxBytes {
			return nil, fmt.Errorf("settings payload is %d bytes, limit %d", len(settingsPayload), maxBytes)
		}
		add(&settings, naming.SettingsFile, settingsPayload)
	}

	var deletes []gist.Change
	remoteNames := make([]string, 0, len(remote))
	for name := range remote {
		remoteNames = append(remoteNames, name)
	}
	sort.Strings(remoteNames)
	for _, name := range remoteNames {
		if written[name] || preserved(naming.Classify(name), opts.Preserve) {
			continue
		}
		deletes = append(deletes, gist.Change{Name: name, Change: api.Delete()})
		plan.Expectation.Absent = append(plan.Expectation.Absent, name)
	}

	for _, group := range [][]gist.Change{chunks, entities, metas, settings} {
		plan.Changes = append(plan.Changes, group...)
		plan.Upserts += len(group)
	}
	plan.Changes = append(plan.Changes, deletes...)
	plan.Deletes = len(deletes)

	return plan, nil
}

// settingsFor builds the settings file payload. Model API keys never leave the device.
func settingsFor(snap *models.Snapshot) *models.SettingsPayload {
	payload := &models.SettingsPayload{
		AppSettings:  snap.Settings,
		AIModels:     make([]models.AIModelConfig, 0, len(snap.AIModels)),
		CoverHistory: snap.Covers,
	}
	for _, m := range snap.AIModels {
		m.APIKey = ""
		payload.AIModels = append(payload.AIModels, m)
	}
	sort.Slice(payload.AIModels, func(i, j int) bool { return payload.AIModels[i].ID < payload.AIModels[j].ID })
	return payload
}

func encodePayload(v any, compress bool) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}
	if !compress {
		return string(data), nil
	}
	return chunk.Compress(string(data))
}

// preserved reports whether a remote file must survive the upload: files
// outside our naming scheme and files of preserved entities.
func preserved(info naming.FileInfo, preserve map[string]bool) bool {
	switch info.Kind {
	case naming.KindUnknown:
		return true
	case naming.KindSettings:
		return preserve[models.ConflictID(models.EntitySettings, models.SettingsID)]
	default:
		return preserve[models.ConflictID(models.EntityNovel, info.ID)]
	}
}
