package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/models"
)

func TestDetectConflicts_Classification(t *testing.T) {
	tests := []struct {
		name   string
		local  *models.Snapshot
		remote *models.Snapshot
		want   []string
	}{
		{
			name:   "equal payload with different timestamps",
			local:  snapshotOf(novel("a", "Same", day1)),
			remote: snapshotOf(novel("a", "Same", day2)),
			want:   nil,
		},
		{
			name:   "differing payload",
			local:  snapshotOf(novel("a", "Local title", day1)),
			remote: snapshotOf(novel("a", "Remote title", day2)),
			want:   []string{"novel:a"},
		},
		{
			name:   "one side only is not a conflict",
			local:  snapshotOf(novel("b", "Local only", day1)),
			remote: snapshotOf(novel("c", "Remote only", day1)),
			want:   nil,
		},
		{
			name:   "content missing on one side is ignored",
			local:  snapshotOf(novel("a", "Same", day1, chapter("c1", "One", nil))),
			remote: snapshotOf(novel("a", "Same", day2, chapter("c1", "One", paragraphs("text")))),
			want:   nil,
		},
		{
			name:   "content differs on both sides",
			local:  snapshotOf(novel("a", "Same", day1, chapter("c1", "One", paragraphs("old")))),
			remote: snapshotOf(novel("a", "Same", day2, chapter("c1", "One", paragraphs("new")))),
			want:   []string{"novel:a"},
		},
		{
			name: "api key is not compared",
			local: &models.Snapshot{AIModels: []models.AIModelConfig{
				{ID: "m1", Name: "GPT", APIKey: "sk-local", LastEdited: day1},
			}},
			remote: &models.Snapshot{AIModels: []models.AIModelConfig{
				{ID: "m1", Name: "GPT", LastEdited: day2},
			}},
			want: nil,
		},
		{
			name: "every entity type",
			local: &models.Snapshot{
				Settings: &models.AppSettings{Theme: "dark", LastEdited: day1},
				Novels:   []*models.Novel{novel("n1", "L", day1)},
				AIModels: []models.AIModelConfig{{ID: "m1", Name: "L"}},
				Covers:   []models.CoverHistoryItem{{ID: "cv1", URL: "https://a"}},
			},
			remote: &models.Snapshot{
				Settings: &models.AppSettings{Theme: "light", LastEdited: day1},
				Novels:   []*models.Novel{novel("n1", "R", day1)},
				AIModels: []models.AIModelConfig{{ID: "m1", Name: "R"}},
				Covers:   []models.CoverHistoryItem{{ID: "cv1", URL: "https://b"}},
			},
			want: []string{"ai_model:m1", "cover:cv1", "novel:n1", "settings:app-settings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := DetectConflicts(tt.local, tt.remote, day1)
			var ids []string
			for _, c := range conflicts {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDetectConflicts_ConflictFields(t *testing.T) {
	local := snapshotOf(novel("n1", "Local", day1))
	remote := snapshotOf(novel("n1", "Remote", day3))

	conflicts := DetectConflicts(local, remote, day2)
	require.Len(t, conflicts, 1)

	c := conflicts[0]
	assert.Equal(t, "novel:n1", c.ID)
	assert.Equal(t, "n1", c.EntityID)
	assert.Equal(t, models.EntityNovel, c.EntityType)
	assert.Equal(t, "Remote", c.Title)
	assert.Equal(t, models.ChoiceRemote, c.Suggested)
	assert.False(t, c.LocalChanged)
	assert.True(t, c.RemoteChanged)
	assert.Equal(t, day1, c.LocalEdited)
	assert.Equal(t, day3, c.RemoteEdited)

	// без предыдущей синхронизации обе стороны считаются измененными
	conflicts = DetectConflicts(snapshotOf(novel("n1", "Local", day3)), remote, time.Time{})
	require.Len(t, conflicts, 1)
	assert.True(t, conflicts[0].LocalChanged)
	assert.True(t, conflicts[0].RemoteChanged)
}

func TestDetectConflicts_SuggestsNewerLocal(t *testing.T) {
	conflicts := DetectConflicts(
		snapshotOf(novel("n1", "Local", day3)),
		snapshotOf(novel("n1", "Remote", day2)),
		day1)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ChoiceLocal, conflicts[0].Suggested)
}

func TestValidateResolutions(t *testing.T) {
	conflicts := []models.Conflict{{ID: "novel:a"}, {ID: "novel:b"}}

	tests := []struct {
		name        string
		resolutions []models.Resolution
		wantErr     bool
	}{
		{
			name: "all resolved",
			resolutions: []models.Resolution{
				{ConflictID: "novel:a", Choice: models.ChoiceLocal},
				{ConflictID: "novel:b", Choice: models.ChoiceRemote},
			},
		},
		{
			name: "extra resolutions are allowed",
			resolutions: []models.Resolution{
				{ConflictID: "novel:a", Choice: models.ChoiceLocal},
				{ConflictID: "novel:b", Choice: models.ChoiceRemote},
				{ConflictID: "novel:z", Choice: models.ChoiceLocal},
			},
		},
		{
			name:        "missing one",
			resolutions: []models.Resolution{{ConflictID: "novel:a", Choice: models.ChoiceLocal}},
			wantErr:     true,
		},
		{
			name: "invalid choice",
			resolutions: []models.Resolution{
				{ConflictID: "novel:a", Choice: "both"},
				{ConflictID: "novel:b", Choice: models.ChoiceRemote},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResolutions(conflicts, tt.resolutions)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnresolvedConflicts)
				return
			}
			assert.NoError(t, err)
		})
	}
}
