package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "novel-abc.json", EntityFile("abc"))
	assert.Equal(t, "novel-chunk-abc__0.json", ChunkFile("abc", 0))
	assert.Equal(t, "novel-chunk-abc__12.json", ChunkFile("abc", 12))
	assert.Equal(t, "novel-abc.meta.json", MetadataFile("abc"))
}

func TestParseChunkName(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected ChunkRef
		ok       bool
	}{
		{
			name:     "current convention",
			file:     "novel-chunk-n1__3.json",
			expected: ChunkRef{ID: "n1", Index: 3, Convention: ConventionCurrent},
			ok:       true,
		},
		{
			name:     "current convention with dashed uuid",
			file:     "novel-chunk-5f1c-42aa-9d__0.json",
			expected: ChunkRef{ID: "5f1c-42aa-9d", Index: 0, Convention: ConventionCurrent},
			ok:       true,
		},
		{
			name:     "id containing the separator",
			file:     "novel-chunk-a__b__7.json",
			expected: ChunkRef{ID: "a__b", Index: 7, Convention: ConventionCurrent},
			ok:       true,
		},
		{
			name:     "legacy convention",
			file:     "novel-chunk-n1-2.json",
			expected: ChunkRef{ID: "n1", Index: 2, Convention: ConventionLegacy},
			ok:       true,
		},
		{
			name:     "legacy convention with dashed id",
			file:     "novel-chunk-my-novel-10.json",
			expected: ChunkRef{ID: "my-novel", Index: 10, Convention: ConventionLegacy},
			ok:       true,
		},
		{name: "non numeric index", file: "novel-chunk-n1__x.json"},
		{name: "legacy non numeric suffix", file: "novel-chunk-my-novel.json"},
		{name: "signed index", file: "novel-chunk-n1__+1.json"},
		{name: "empty index", file: "novel-chunk-n1__.json"},
		{name: "empty id", file: "novel-chunk-__1.json"},
		{name: "no separator", file: "novel-chunk-n1.json"},
		{name: "wrong prefix", file: "novel-n1__1.json"},
		{name: "wrong suffix", file: "novel-chunk-n1__1.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ParseChunkName(tt.file)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, ref)
			}
		})
	}
}

func TestParseChunkName_RoundTrip(t *testing.T) {
	for _, id := range []string{"n1", "a-b-c", "x__y", "1700000000000"} {
		for _, idx := range []int{0, 1, 9, 10, 123} {
			ref, ok := ParseChunkName(ChunkFile(id, idx))
			assert.True(t, ok)
			assert.Equal(t, id, ref.ID)
			assert.Equal(t, idx, ref.Index)
			assert.Equal(t, ConventionCurrent, ref.Convention)
		}
	}
}

func TestParseEntityIDFromChunkName(t *testing.T) {
	id, ok := ParseEntityIDFromChunkName("novel-chunk-abc__4.json")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = ParseEntityIDFromChunkName("settings.json")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		file string
		kind Kind
		id   string
	}{
		{file: "settings.json", kind: KindSettings},
		{file: "novel-n1.json", kind: KindEntity, id: "n1"},
		{file: "novel-n1.meta.json", kind: KindMetadata, id: "n1"},
		{file: "novel-chunk-n1__0.json", kind: KindChunk, id: "n1"},
		{file: "novel-chunk-n1-0.json", kind: KindChunk, id: "n1"},
		{file: "novel-chunk-broken.json", kind: KindUnknown},
		{file: "novel-.json", kind: KindUnknown},
		{file: "README.md", kind: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			info := Classify(tt.file)
			assert.Equal(t, tt.kind, info.Kind, info.Kind.String())
			assert.Equal(t, tt.id, info.ID)
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id string
		ok bool
	}{
		{id: "n1", ok: true},
		{id: "3f2b9c1e-8a4d-4f6b-9c2e-1a2b3c4d5e6f", ok: true},
		{id: "novel-1", ok: true},
		{id: "a__1", ok: true},
		{id: "v1.2", ok: true},
		{id: ""},
		{id: "chunk-x"},
		{id: "chunk-x-3"},
		{id: "x.meta"},
		{id: "dir/x"},
		{id: `dir\x`},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}
}
