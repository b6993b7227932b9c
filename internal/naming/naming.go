// Package naming builds and parses remote file names.
//
// Layout of the remote blob:
//
//	settings.json                      global settings, AI models, cover history
//	novel-<id>.json                    novel stored as one file
//	novel-chunk-<id>__<index>.json     chunk of a novel (current separator)
//	novel-chunk-<id>-<index>.json      chunk of a novel (retired separator, read only)
//	novel-<id>.meta.json               chunk metadata of a novel
package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned for entity ids that do not survive the round
// trip through their file names.
var ErrInvalidID = errors.New("invalid entity id")

const (
	// SettingsFile is the name of the settings file.
	SettingsFile = "settings.json"

	entityPrefix = "novel-"
	chunkPrefix  = "novel-chunk-"
	metaSuffix   = ".meta.json"
	jsonSuffix   = ".json"

	// Separator is the separator between entity id and chunk index written today.
	Separator = "__"
	// LegacySeparator was used by older clients. Names with it are still parsed.
	LegacySeparator = "-"
)

// Convention identifies the chunk naming convention a file was written with.
type Convention int

const (
	ConventionCurrent Convention = iota
	ConventionLegacy
)

// EntityFile returns the name of an unchunked entity file.
func EntityFile(id string) string {
	return entityPrefix + id + jsonSuffix
}

// ChunkFile returns the name of the chunk with the given index.
func ChunkFile(id string, index int) string {
	return chunkPrefix + id + Separator + strconv.Itoa(index) + jsonSuffix
}

// MetadataFile returns the name of the chunk metadata file.
// It does not depend on the chunk separator.
func MetadataFile(id string) string {
	return entityPrefix + id + metaSuffix
}

// ValidateID checks that every file name built from id classifies back to
// id. An id starting with "chunk-" would be read as a chunk, an id ending
// with ".meta" as chunk metadata.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	}
	if info := Classify(EntityFile(id)); info.Kind != KindEntity || info.ID != id {
		return fmt.Errorf("%w: %q is read back as %s", ErrInvalidID, id, info.Kind)
	}
	if info := Classify(MetadataFile(id)); info.Kind != KindMetadata || info.ID != id {
		return fmt.Errorf("%w: %q clashes with metadata names", ErrInvalidID, id)
	}
	if info := Classify(ChunkFile(id, 0)); info.Kind != KindChunk || info.ID != id {
		return fmt.Errorf("%w: %q clashes with chunk names", ErrInvalidID, id)
	}
	return nil
}

// ChunkRef is a parsed chunk file name.
type ChunkRef struct {
	ID         string
	Index      int
	Convention Convention
}

// chunkParser tries to split "<id><sep><index>" for one convention.
type chunkParser struct {
	separator  string
	convention Convention
}

// parsers are tried in order: current convention first.
var parsers = []chunkParser{
	{separator: Separator, convention: ConventionCurrent},
	{separator: LegacySeparator, convention: ConventionLegacy},
}

func (p chunkParser) parse(body string) (ChunkRef, bool) {
	i := strings.LastIndex(body, p.separator)
	if i <= 0 {
		return ChunkRef{}, false
	}
	id, idx := body[:i], body[i+len(p.separator):]
	index, ok := parseIndex(idx)
	if !ok {
		return ChunkRef{}, false
	}
	return ChunkRef{ID: id, Index: index, Convention: p.convention}, true
}

// parseIndex accepts only plain decimal digits (no sign, no spaces).
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseChunkName extracts entity id and index from a chunk file name.
func ParseChunkName(name string) (ChunkRef, bool) {
	if !strings.HasPrefix(name, chunkPrefix) || !strings.HasSuffix(name, jsonSuffix) {
		return ChunkRef{}, false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(name, chunkPrefix), jsonSuffix)
	for _, p := range parsers {
		if ref, ok := p.parse(body); ok {
			return ref, true
		}
	}
	return ChunkRef{}, false
}

// ParseEntityIDFromChunkName returns the entity id of a chunk file name.
func ParseEntityIDFromChunkName(name string) (string, bool) {
	ref, ok := ParseChunkName(name)
	if !ok {
		return "", false
	}
	return ref.ID, true
}

// ParseMetadataFile returns the entity id of a metadata file name.
func ParseMetadataFile(name string) (string, bool) {
	if !strings.HasPrefix(name, entityPrefix) || !strings.HasSuffix(name, metaSuffix) {
		return "", false
	}
	if strings.HasPrefix(name, chunkPrefix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, entityPrefix), metaSuffix)
	if id == "" {
		return "", false
	}
	return id, true
}

// ParseEntityFile returns the entity id of an unchunked entity file name.
func ParseEntityFile(name string) (string, bool) {
	if !strings.HasPrefix(name, entityPrefix) || !strings.HasSuffix(name, jsonSuffix) {
		return "", false
	}
	if strings.HasPrefix(name, chunkPrefix) || strings.HasSuffix(name, metaSuffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, entityPrefix), jsonSuffix)
	if id == "" {
		return "", false
	}
	return id, true
}

// Kind classifies a remote file name.
type Kind int

const (
	KindUnknown Kind = iota
	KindSettings
	KindEntity
	KindChunk
	KindMetadata
)

// String returns a readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSettings:
		return "settings"
	case KindEntity:
		return "entity"
	case KindChunk:
		return "chunk"
	case KindMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// FileInfo is the classification of a remote file name.
type FileInfo struct {
	Name  string
	ID    string
	Kind  Kind
	Chunk ChunkRef
}

// Classify determines what a remote file holds.
func Classify(name string) FileInfo {
	info := FileInfo{Name: name}
	switch {
	case name == SettingsFile:
		info.Kind = KindSettings
	case strings.HasPrefix(name, chunkPrefix):
		if ref, ok := ParseChunkName(name); ok {
			info.Kind = KindChunk
			info.ID = ref.ID
			info.Chunk = ref
		}
	case strings.HasSuffix(name, metaSuffix):
		if id, ok := ParseMetadataFile(name); ok {
			info.Kind = KindMetadata
			info.ID = id
		}
	default:
		if id, ok := ParseEntityFile(name); ok {
			info.Kind = KindEntity
			info.ID = id
		}
	}
	return info
}
