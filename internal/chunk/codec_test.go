package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		maxBytes int
	}{
		{name: "empty", payload: "", maxBytes: 10},
		{name: "ascii fits in one chunk", payload: "hello world", maxBytes: 100},
		{name: "ascii exact multiple", payload: strings.Repeat("a", 30), maxBytes: 10},
		{name: "ascii with remainder", payload: strings.Repeat("b", 31), maxBytes: 10},
		{name: "cyrillic two-byte", payload: strings.Repeat("привет ", 20), maxBytes: 7},
		{name: "cjk three-byte", payload: strings.Repeat("修仙小说", 13), maxBytes: 8},
		{name: "emoji four-byte", payload: strings.Repeat("📚🐉", 9), maxBytes: 5},
		{name: "combining sequences", payload: strings.Repeat("é👩‍👩‍👧", 7), maxBytes: 6},
		{name: "mixed", payload: "Глава 1: 龍の道 🐲 — done", maxBytes: 4},
		{name: "limit equals rune width", payload: "日本語", maxBytes: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Encode(tt.payload, tt.maxBytes)
			require.NoError(t, err)

			assert.Equal(t, tt.payload, Decode(set.Chunks))
			assert.Equal(t, len(set.Chunks), set.Metadata.Chunks)
			assert.Equal(t, len(tt.payload), set.Metadata.TotalSize)

			for i, c := range set.Chunks {
				assert.NotEmpty(t, c, "chunk %d is empty", i)
				assert.LessOrEqual(t, len(c), tt.maxBytes, "chunk %d too large", i)
				assert.True(t, utf8.ValidString(c), "chunk %d splits a code point", i)
			}
		})
	}
}

func TestEncode_ChunksAreMaximal(t *testing.T) {
	// каждый чанк кроме последнего не должен вмещать следующий символ
	payload := strings.Repeat("ab日", 50)
	set, err := Encode(payload, 10)
	require.NoError(t, err)

	rest := payload
	for i, c := range set.Chunks {
		rest = strings.TrimPrefix(rest, c)
		if i == len(set.Chunks)-1 {
			break
		}
		_, size := utf8.DecodeRuneInString(rest)
		assert.Greater(t, len(c)+size, 10, "chunk %d could hold one more character", i)
	}
	assert.Empty(t, rest)
}

func TestEncode_ExactMultipleProducesNoEmptyTail(t *testing.T) {
	set, err := Encode(strings.Repeat("x", 40), 10)
	require.NoError(t, err)
	assert.Len(t, set.Chunks, 4)
	assert.Equal(t, 4, set.Metadata.Chunks)
}

func TestEncode_LargeASCIIPayload(t *testing.T) {
	payload := strings.Repeat("0123456789", 250_000) // 2.5 MB

	set, err := Encode(payload, DefaultMaxBytes)
	require.NoError(t, err)

	assert.Len(t, set.Chunks, 3)
	assert.Equal(t, 3, set.Metadata.Chunks)
	for _, c := range set.Chunks {
		assert.LessOrEqual(t, len(c), DefaultMaxBytes)
	}
	assert.Equal(t, payload, Decode(set.Chunks))
}

func TestEncode_InvalidUTF8IsLossless(t *testing.T) {
	payload := "ok\xff\xfe日本\x80end"
	set, err := Encode(payload, 3)
	require.NoError(t, err)
	assert.Equal(t, payload, Decode(set.Chunks))
}

func TestEncode_LimitTooSmall(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		maxBytes int
	}{
		{name: "zero limit", payload: "a", maxBytes: 0},
		{name: "negative limit", payload: "a", maxBytes: -5},
		{name: "emoji does not fit", payload: "ab🐉", maxBytes: 3},
		{name: "cjk does not fit", payload: "日", maxBytes: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Encode(tt.payload, tt.maxBytes)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrLimitTooSmall)
			assert.Nil(t, set)
		})
	}
}

func TestDecodeWithMetadata(t *testing.T) {
	set, err := Encode("abcdefghij", 4)
	require.NoError(t, err)

	got, err := DecodeWithMetadata(set.Chunks, set.Metadata)
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", got)

	_, err = DecodeWithMetadata(set.Chunks[:2], set.Metadata)
	assert.ErrorIs(t, err, ErrMetadataMismatch)

	_, err = DecodeWithMetadata([]string{"abcd", "efgh", "i"}, set.Metadata)
	assert.ErrorIs(t, err, ErrMetadataMismatch)
}
