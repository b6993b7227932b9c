package sync

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/iudanet/novelsync/internal/chunk"
	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/internal/naming"
	"github.com/iudanet/novelsync/pkg/api"
)

type chunkedFiles struct {
	current  map[int]string // index -> file name
	legacy   map[int]string
	metaFile string
}

// DecodeRemote builds the remote snapshot from the gist file listing and the
// resolved file contents. A file listed in failures (or missing from
// contents) makes its entity unreadable; every other entity is still decoded.
func DecodeRemote(files map[string]*api.GistFile, contents map[string]string, failures map[string]error, logger *slog.Logger) *RemoteSnapshot {
	r := newRemoteSnapshot(files)

	entityFiles := make(map[string]string)
	chunked := make(map[string]*chunkedFiles)
	settingsFound := false

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := naming.Classify(name)
		switch info.Kind {
		case naming.KindSettings:
			settingsFound = true
		case naming.KindEntity:
			entityFiles[info.ID] = name
		case naming.KindChunk, naming.KindMetadata:
			cf, ok := chunked[info.ID]
			if !ok {
				cf = &chunkedFiles{current: map[int]string{}, legacy: map[int]string{}}
				chunked[info.ID] = cf
			}
			switch {
			case info.Kind == naming.KindMetadata:
				cf.metaFile = name
			case info.Chunk.Convention == naming.ConventionLegacy:
				cf.legacy[info.Chunk.Index] = name
			default:
				cf.current[info.Chunk.Index] = name
			}
		default:
			logger.Debug("ignoring unknown remote file", "file", name)
		}
	}

	read := func(name string) (string, error) {
		if err, ok := failures[name]; ok {
			return "", err
		}
		content, ok := contents[name]
		if !ok {
			return "", fmt.Errorf("content of %s is missing", name)
		}
		return content, nil
	}

	if settingsFound {
		decodeSettings(r, read)
	}

	ids := make([]string, 0, len(entityFiles)+len(chunked))
	seen := make(map[string]bool)
	for id := range entityFiles {
		ids = append(ids, id)
		seen[id] = true
	}
	for id := range chunked {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		var (
			payload string
			file    string
			err     error
		)
		if name, ok := entityFiles[id]; ok {
			// Одиночный файл приоритетнее остатков чанков незавершенной загрузки
			if _, leftover := chunked[id]; leftover {
				logger.Warn("novel has both single and chunked files, using single file", "novel_id", id)
			}
			file = name
			payload, err = read(name)
		} else {
			file = naming.MetadataFile(id)
			payload, err = joinChunks(chunked[id], read)
		}
		if err != nil {
			logger.Warn("skipping unreadable novel", "novel_id", id, "error", err)
			r.fail(models.EntityNovel, id, file, err)
			continue
		}

		novel, err := decodeNovel(payload)
		if err != nil {
			logger.Warn("skipping unparsable novel", "novel_id", id, "error", err)
			r.fail(models.EntityNovel, id, file, err)
			continue
		}
		if novel.ID != id {
			err := fmt.Errorf("%w: file is named for %q but holds %q", ErrParse, id, novel.ID)
			r.fail(models.EntityNovel, id, file, err)
			continue
		}
		r.Novels = append(r.Novels, novel)
	}

	return r
}

func decodeSettings(r *RemoteSnapshot, read func(string) (string, error)) {
	content, err := read(naming.SettingsFile)
	if err == nil {
		content, err = chunk.Decompress(content)
	}
	var payload models.SettingsPayload
	if err == nil {
		if uerr := json.Unmarshal([]byte(content), &payload); uerr != nil {
			err = fmt.Errorf("%w: %v", ErrParse, uerr)
		}
	}
	if err != nil {
		r.SettingsUnreadable = true
		r.fail(models.EntitySettings, models.SettingsID, naming.SettingsFile, err)
		return
	}

	r.Settings = payload.AppSettings
	r.AIModels = payload.AIModels
	r.Covers = payload.CoverHistory
}

// joinChunks reassembles a chunked entity. The current naming convention
// wins over the legacy one when both are present.
func joinChunks(cf *chunkedFiles, read func(string) (string, error)) (string, error) {
	files := cf.current
	if len(files) == 0 {
		files = cf.legacy
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: metadata without chunk files", ErrIncompleteChunks)
	}

	parts := make([]string, len(files))
	for i := range parts {
		name, ok := files[i]
		if !ok {
			return "", fmt.Errorf("%w: chunk %d of %d is missing", ErrIncompleteChunks, i, len(files))
		}
		content, err := read(name)
		if err != nil {
			return "", err
		}
		parts[i] = content
	}

	if cf.metaFile == "" {
		return chunk.Decode(parts), nil
	}
	metaContent, err := read(cf.metaFile)
	if err != nil {
		return "", err
	}
	var meta chunk.Metadata
	if err := json.Unmarshal([]byte(metaContent), &meta); err != nil {
		return "", fmt.Errorf("%w: metadata: %v", ErrParse, err)
	}
	return chunk.DecodeWithMetadata(parts, meta)
}

func decodeNovel(payload string) (*models.Novel, error) {
	content, err := chunk.Decompress(payload)
	if err != nil {
		return nil, err
	}
	var novel models.Novel
	if err := json.Unmarshal([]byte(content), &novel); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if novel.ID == "" {
		return nil, fmt.Errorf("%w: novel has no id", ErrParse)
	}
	return &novel, nil
}
