package sync

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/models"
	"github.com/iudanet/novelsync/pkg/api"
)

var (
	day1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	day3 = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paragraphs(texts ...string) []models.Paragraph {
	out := make([]models.Paragraph, 0, len(texts))
	for i, text := range texts {
		out = append(out, models.Paragraph{ID: string(rune('a' + i)), Text: text})
	}
	return out
}

func chapter(id, title string, content []models.Paragraph) models.Chapter {
	return models.Chapter{ID: id, Title: title, Content: content}
}

func novel(id, title string, edited time.Time, chapters ...models.Chapter) *models.Novel {
	return &models.Novel{
		ID:         id,
		Title:      title,
		CreatedAt:  day1,
		LastEdited: edited,
		Volumes:    []models.Volume{{ID: id + "-v1", Title: "Volume 1", Chapters: chapters}},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

// inline turns name -> content into a gist listing with inline content.
func inline(contents map[string]string) map[string]*api.GistFile {
	files := make(map[string]*api.GistFile, len(contents))
	for name, content := range contents {
		c := content
		files[name] = &api.GistFile{Filename: name, Content: &c, Size: len(c)}
	}
	return files
}

// applyPlan returns the remote file set after plan was written over remote.
func applyPlan(remote map[string]string, plan *UploadPlan) map[string]string {
	out := make(map[string]string, len(remote))
	for name, content := range remote {
		out[name] = content
	}
	for _, ch := range plan.Changes {
		if ch.Change.IsDelete() {
			delete(out, ch.Name)
			continue
		}
		out[ch.Name] = ch.Change.Content()
	}
	return out
}

// ascii returns a payload of n bytes.
func ascii(n int) string {
	return strings.Repeat("x", n)
}
