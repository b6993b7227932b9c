package sync

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/chunk"
	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/internal/naming"
)

// encodeRemote uploads snap into an empty remote and returns the files.
func encodeRemote(t *testing.T, snap *models.Snapshot, opts PlanOptions) map[string]string {
	t.Helper()
	plan, err := BuildUploadPlan(snap, nil, opts)
	require.NoError(t, err)
	return applyPlan(nil, plan)
}

func decode(contents map[string]string, failures map[string]error) *RemoteSnapshot {
	return DecodeRemote(inline(contents), contents, failures, discardLogger())
}

func TestDecodeRemote_RoundTrip(t *testing.T) {
	long := novel("n2", "Долгая история", day2,
		chapter("c1", "Глава 1", paragraphs(strings.Repeat("текст ", 40), strings.Repeat("ещё ", 40))))
	snap := &models.Snapshot{
		Settings: &models.AppSettings{Theme: "dark", LastEdited: day1},
		Novels: []*models.Novel{
			novel("n1", "Short", day1, chapter("c1", "One", paragraphs("first"))),
			long,
		},
		AIModels: []models.AIModelConfig{{ID: "m1", Name: "GPT", LastEdited: day1}},
		Covers:   []models.CoverHistoryItem{{ID: "cv1", URL: "https://example.com/c.png", AddedAt: day1}},
	}

	for _, compress := range []bool{false, true} {
		t.Run(fmt.Sprintf("compress=%v", compress), func(t *testing.T) {
			files := encodeRemote(t, snap, PlanOptions{MaxFileBytes: 400, Compress: compress})
			if !compress {
				require.Contains(t, files, naming.MetadataFile("n2"))
			}

			remote := decode(files, nil)
			require.Empty(t, remote.Failures)
			require.Len(t, remote.Novels, 2)
			assert.Equal(t, snap.Novels[0].Title, remote.NovelByID("n1").Title)
			assert.Equal(t, long.Volumes[0].Chapters[0].Content, remote.NovelByID("n2").Volumes[0].Chapters[0].Content)
			assert.Equal(t, "dark", remote.Settings.Theme)
			assert.Len(t, remote.AIModels, 1)
			assert.Len(t, remote.Covers, 1)
		})
	}
}

func TestDecodeRemote_LegacyChunkNames(t *testing.T) {
	n := novel("n1", "Legacy", day1, chapter("c1", "One", paragraphs(ascii(300))))
	files := encodeRemote(t, &models.Snapshot{Novels: []*models.Novel{n}}, PlanOptions{MaxFileBytes: 128})

	legacy := make(map[string]string, len(files))
	for name, content := range files {
		if ref, ok := naming.ParseChunkName(name); ok {
			name = fmt.Sprintf("novel-chunk-%s-%d.json", ref.ID, ref.Index)
		}
		legacy[name] = content
	}

	remote := decode(legacy, nil)
	require.Empty(t, remote.Failures)
	require.Len(t, remote.Novels, 1)
	assert.Equal(t, n.Volumes, remote.Novels[0].Volumes)
}

func TestDecodeRemote_CurrentConventionWins(t *testing.T) {
	n := novel("n1", "Current", day1, chapter("c1", "One", paragraphs(ascii(300))))
	files := encodeRemote(t, &models.Snapshot{Novels: []*models.Novel{n}}, PlanOptions{MaxFileBytes: 128})
	// остаток старой загрузки с другим содержимым
	files["novel-chunk-n1-0.json"] = "garbage"

	remote := decode(files, nil)
	require.Empty(t, remote.Failures)
	require.Len(t, remote.Novels, 1)
	assert.Equal(t, "Current", remote.Novels[0].Title)
}

func TestDecodeRemote_SingleFileWinsOverChunks(t *testing.T) {
	n := novel("n1", "Single", day1)
	files := map[string]string{
		naming.EntityFile("n1"):   mustJSON(t, n),
		naming.ChunkFile("n1", 0): "stale",
		naming.MetadataFile("n1"): `{"chunks":1,"totalSize":5}`,
	}

	remote := decode(files, nil)
	require.Empty(t, remote.Failures)
	require.Len(t, remote.Novels, 1)
	assert.Equal(t, "Single", remote.Novels[0].Title)
}

func TestDecodeRemote_EntityFailures(t *testing.T) {
	good := novel("ok", "Good", day1)
	chunked := func(t *testing.T) map[string]string {
		n := novel("n1", "Chunked", day1, chapter("c1", "One", paragraphs(ascii(300))))
		return encodeRemote(t, &models.Snapshot{Novels: []*models.Novel{n}}, PlanOptions{MaxFileBytes: 128})
	}

	tests := []struct {
		name     string
		prepare  func(t *testing.T) (map[string]string, map[string]error)
		wantErr  error
		wantFile string
	}{
		{
			name: "invalid json",
			prepare: func(t *testing.T) (map[string]string, map[string]error) {
				return map[string]string{naming.EntityFile("n1"): "{not json"}, nil
			},
			wantErr:  ErrParse,
			wantFile: naming.EntityFile("n1"),
		},
		{
			name: "id mismatch",
			prepare: func(t *testing.T) (map[string]string, map[string]error) {
				return map[string]string{naming.EntityFile("n1"): mustJSON(t, novel("other", "X", day1))}, nil
			},
			wantErr: ErrParse,
		},
		{
			name: "metadata mismatch",
			prepare: func(t *testing.T) (map[string]string, map[string]error) {
				files := chunked(t)
				files[naming.MetadataFile("n1")] = `{"chunks":7,"totalSize":1}`
				return files, nil
			},
			wantErr: chunk.ErrMetadataMismatch,
		},
		{
			name: "missing chunk",
			prepare: func(t *testing.T) (map[string]string, map[string]error) {
				files := chunked(t)
				delete(files, naming.ChunkFile("n1", 1))
				return files, nil
			},
			wantErr: ErrIncompleteChunks,
		},
		{
			name: "truncated and unrecoverable",
			prepare: func(t *testing.T) (map[string]string, map[string]error) {
				files := chunked(t)
				failures := map[string]error{
					naming.ChunkFile("n1", 0): fmt.Errorf("%w: raw fetch failed", gist.ErrTruncatedUnrecoverable),
				}
				return files, failures
			},
			wantErr: gist.ErrTruncatedUnrecoverable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents, failures := tt.prepare(t)
			contents[naming.EntityFile("ok")] = mustJSON(t, good)

			remote := decode(contents, failures)

			// один сломанный роман не мешает остальным
			require.Len(t, remote.Novels, 1)
			assert.Equal(t, "ok", remote.Novels[0].ID)

			require.Len(t, remote.Failures, 1)
			failure := remote.Failures[0]
			assert.ErrorIs(t, failure, tt.wantErr)
			assert.Equal(t, models.EntityNovel, failure.Type)
			assert.Equal(t, "n1", failure.ID)
			if tt.wantFile != "" {
				assert.Equal(t, tt.wantFile, failure.File)
			}
			assert.True(t, remote.IsUnreadable(models.EntityNovel, "n1"))
			assert.False(t, remote.IsUnreadable(models.EntityNovel, "ok"))
		})
	}
}

func TestDecodeRemote_SettingsUnreadable(t *testing.T) {
	files := map[string]string{
		naming.SettingsFile:     `{"appSettings":`,
		naming.EntityFile("n1"): mustJSON(t, novel("n1", "Fine", day1)),
	}

	remote := decode(files, nil)
	assert.True(t, remote.SettingsUnreadable)
	require.Len(t, remote.Failures, 1)
	assert.ErrorIs(t, remote.Failures[0], ErrParse)
	assert.Nil(t, remote.Settings)
	assert.True(t, remote.IsUnreadable(models.EntityAIModel, "any"))
	assert.True(t, remote.IsUnreadable(models.EntityCover, "any"))
	assert.False(t, remote.IsUnreadable(models.EntityNovel, "n1"))
	assert.Len(t, remote.Novels, 1)
}

func TestDecodeRemote_IgnoresUnknownFiles(t *testing.T) {
	files := map[string]string{
		"README.md":             "# notes",
		"novel-.json":           "{}",
		"novel-chunk-x__a.json": "??",
	}

	remote := decode(files, nil)
	assert.Empty(t, remote.Failures)
	assert.Empty(t, remote.Novels)
	assert.Nil(t, remote.Settings)
}
