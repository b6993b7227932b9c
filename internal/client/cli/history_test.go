package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/client/sync"
	"github.com/iudanet/novelsync/pkg/api"
)

const historyGistID = "aa5a315d61ae9438b18d"

func strPtr(s string) *string { return &s }

func testRevisions() []api.Revision {
	return []api.Revision{
		{Version: "c3d4e5f60718293a", CommittedAt: testNow.Add(-time.Hour), ChangeStatus: api.ChangeStatus{Additions: 12, Deletions: 3}},
		{Version: "b2c3d4e5f6071829", CommittedAt: testNow.Add(-24 * time.Hour), ChangeStatus: api.ChangeStatus{Additions: 40}},
		{Version: "b2ffd4e5f6071829", CommittedAt: testNow.Add(-48 * time.Hour), ChangeStatus: api.ChangeStatus{Additions: 1}},
	}
}

func linkedCli(t *testing.T) (*Cli, *testConsole) {
	t.Helper()
	c, console := newTestCli(t)
	require.NoError(t, c.runLink(context.Background(), historyGistID))
	c.syncService = &sync.ServiceMock{}
	return c, console
}

func TestFindRevision(t *testing.T) {
	revisions := testRevisions()

	tests := []struct {
		name    string
		version string
		want    int
		wantErr string
	}{
		{name: "full version", version: "b2c3d4e5f6071829", want: 1},
		{name: "prefix", version: "c3d4", want: 0},
		{name: "ambiguous prefix", version: "b2", wantErr: "ambiguous"},
		{name: "unknown", version: "ffff", wantErr: "not found"},
		{name: "empty", version: "", wantErr: "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findRevision(revisions, tt.version)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCli_runHistory(t *testing.T) {
	c, console := linkedCli(t)
	mockHistory := &HistoryMock{
		ListRevisionsFunc: func(ctx context.Context, id string) ([]api.Revision, error) {
			return testRevisions(), nil
		},
	}
	c.history = mockHistory

	require.NoError(t, c.runHistory(context.Background(), 2))

	require.Len(t, mockHistory.ListRevisionsCalls(), 1)
	assert.Equal(t, historyGistID, mockHistory.ListRevisionsCalls()[0].ID)
	output := console.output()
	assert.Contains(t, output, "c3d4e5f6")
	assert.Contains(t, output, "+12 -3")
	assert.Contains(t, output, "b2c3d4e5")
	// лимит в две ревизии
	assert.NotContains(t, output, "b2ffd4e5")
}

func TestCli_runHistory_NoRemote(t *testing.T) {
	c, _ := newTestCli(t)
	c.syncService = &sync.ServiceMock{}
	mockHistory := &HistoryMock{}
	c.history = mockHistory

	err := c.runHistory(context.Background(), 0)

	require.ErrorIs(t, err, sync.ErrNoRemoteID)
	assert.Empty(t, mockHistory.ListRevisionsCalls())
}

func TestCli_runHistory_Error(t *testing.T) {
	c, _ := linkedCli(t)
	c.history = &HistoryMock{
		ListRevisionsFunc: func(ctx context.Context, id string) ([]api.Revision, error) {
			return nil, errors.New("rate limited")
		},
	}

	err := c.runHistory(context.Background(), 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCli_runDiff(t *testing.T) {
	c, console := linkedCli(t)
	revisions := map[string]*api.Gist{
		"c3d4e5f60718293a": {Files: map[string]*api.GistFile{
			"novel_n1.json":        {Filename: "novel_n1.json", Size: 20, Content: strPtr(`{"id":"n1","v":2}...`)},
			"settings.json":        {Filename: "settings.json", Size: 9, Content: strPtr(`{"a":"b"}`)},
			"novel_n2_chunk0.json": {Filename: "novel_n2_chunk0.json", Size: 5, Content: strPtr(`{"x"}`)},
		}},
		"b2c3d4e5f6071829": {Files: map[string]*api.GistFile{
			"novel_n1.json": {Filename: "novel_n1.json", Size: 12, Content: strPtr(`{"id":"n1"}`)},
			"settings.json": {Filename: "settings.json", Size: 9, Content: strPtr(`{"a":"b"}`)},
			"novel_n3.json": {Filename: "novel_n3.json", Size: 4, Content: strPtr(`{}{}`)},
		}},
	}
	mockHistory := &HistoryMock{
		ListRevisionsFunc: func(ctx context.Context, id string) ([]api.Revision, error) {
			return testRevisions(), nil
		},
		GetRevisionFunc: func(ctx context.Context, id, version string) (*api.Gist, error) {
			return revisions[version], nil
		},
	}
	c.history = mockHistory

	require.NoError(t, c.runDiff(context.Background(), "c3d4"))

	calls := mockHistory.GetRevisionCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "c3d4e5f60718293a", calls[0].Version)
	assert.Equal(t, "b2c3d4e5f6071829", calls[1].Version)

	output := console.output()
	assert.Contains(t, output, "=== Changes in c3d4e5f6 (1 hour ago")
	assert.Contains(t, output, "modified  novel_n1.json  12 B -> 20 B")
	assert.Contains(t, output, "added     novel_n2_chunk0.json")
	assert.Contains(t, output, "removed   novel_n3.json")
	assert.NotContains(t, output, "settings.json")
}

// TestCli_runDiff_FirstRevision первая ревизия сравнивается с пустым gist
func TestCli_runDiff_FirstRevision(t *testing.T) {
	c, console := linkedCli(t)
	mockHistory := &HistoryMock{
		ListRevisionsFunc: func(ctx context.Context, id string) ([]api.Revision, error) {
			return testRevisions(), nil
		},
		GetRevisionFunc: func(ctx context.Context, id, version string) (*api.Gist, error) {
			return &api.Gist{Files: map[string]*api.GistFile{
				"settings.json": {Filename: "settings.json", Size: 2, Content: strPtr(`{}`)},
			}}, nil
		},
	}
	c.history = mockHistory

	require.NoError(t, c.runDiff(context.Background(), "b2ff"))

	assert.Len(t, mockHistory.GetRevisionCalls(), 1)
	assert.Contains(t, console.output(), "added     settings.json  2 B")
}

func TestCli_runDiff_Unknown(t *testing.T) {
	c, _ := linkedCli(t)
	mockHistory := &HistoryMock{
		ListRevisionsFunc: func(ctx context.Context, id string) ([]api.Revision, error) {
			return testRevisions(), nil
		},
	}
	c.history = mockHistory

	err := c.runDiff(context.Background(), "0000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, mockHistory.GetRevisionCalls())
}
