// Package chunk splits oversized payloads into byte-bounded chunks and
// joins them back. Chunk boundaries always fall between code points.
package chunk

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxBytes is a safety margin below the gist per-file limit (1 MiB).
const DefaultMaxBytes = 900 * 1024

var (
	// ErrLimitTooSmall is returned when a single character does not fit into a chunk.
	ErrLimitTooSmall = errors.New("chunk limit is smaller than a single character")

	// ErrMetadataMismatch is returned when reassembled chunks disagree with their metadata.
	ErrMetadataMismatch = errors.New("chunks do not match metadata")
)

// Metadata describes a chunked payload. It is stored next to the chunks.
type Metadata struct {
	Chunks    int `json:"chunks"`
	TotalSize int `json:"totalSize"`
}

// Set is an ordered sequence of chunks of one payload.
type Set struct {
	Chunks   []string
	Metadata Metadata
}

// Encode splits payload into chunks whose UTF-8 length is at most maxBytes.
//
// For every chunk it binary searches the largest number of characters that
// still fits, using precomputed character offsets, so each probe is O(1).
// Invalid UTF-8 bytes are treated as one-byte characters, which keeps the
// split lossless for any input.
func Encode(payload string, maxBytes int) (*Set, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrLimitTooSmall, maxBytes)
	}

	set := &Set{Metadata: Metadata{TotalSize: len(payload)}}
	if payload == "" {
		return set, nil
	}

	// offsets[i] - байтовое смещение i-го символа, последний элемент = len(payload)
	offsets := make([]int, 0, len(payload)+1)
	for i := range payload {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(payload))
	chars := len(offsets) - 1

	for pos := 0; pos < chars; {
		if offsets[pos+1]-offsets[pos] > maxBytes {
			return nil, fmt.Errorf("%w: character at byte %d needs %d bytes, limit %d",
				ErrLimitTooSmall, offsets[pos], offsets[pos+1]-offsets[pos], maxBytes)
		}

		lo, hi := 1, chars-pos
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if offsets[pos+mid]-offsets[pos] <= maxBytes {
				lo = mid
			} else {
				hi = mid - 1
			}
		}

		set.Chunks = append(set.Chunks, payload[offsets[pos]:offsets[pos+lo]])
		pos += lo
	}

	set.Metadata.Chunks = len(set.Chunks)
	return set, nil
}

// Decode concatenates chunks in order.
func Decode(chunks []string) string {
	return strings.Join(chunks, "")
}

// DecodeWithMetadata concatenates chunks and validates them against meta.
func DecodeWithMetadata(chunks []string, meta Metadata) (string, error) {
	if len(chunks) != meta.Chunks {
		return "", fmt.Errorf("%w: expected %d chunks, got %d", ErrMetadataMismatch, meta.Chunks, len(chunks))
	}
	payload := Decode(chunks)
	if meta.TotalSize > 0 && len(payload) != meta.TotalSize {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrMetadataMismatch, meta.TotalSize, len(payload))
	}
	return payload, nil
}
