package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/client/gist/gisttest"
)

func remoteCli(t *testing.T, srv *gisttest.Server) (*Cli, *testConsole) {
	t.Helper()
	c, console := newTestCli(t)
	login(t, c)
	c.cfg.Passphrase = testPassphrase
	c.cfg.Remote.APIURL = srv.URL
	c.cfg.Remote.MaxRetries = 0
	return c, console
}

// TestCli_SyncBetweenDevices проходит путь пользователя: sync, link, pull и history
func TestCli_SyncBetweenDevices(t *testing.T) {
	ctx := context.Background()
	srv := gisttest.NewServer()
	t.Cleanup(srv.Close)

	first, firstConsole := remoteCli(t, srv)
	seedLibrary(t, first)

	require.NoError(t, first.runSync(ctx))
	assert.Contains(t, firstConsole.output(), "✓ ")

	ids := srv.IDs()
	require.Len(t, ids, 1)
	remoteID, err := first.remoteID(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[0], remoteID)

	// ключи API не покидают устройство
	for name, content := range srv.Files(remoteID) {
		assert.NotContains(t, content, "sk-secret", name)
	}

	second, secondConsole := remoteCli(t, srv)
	require.NoError(t, second.runLink(ctx, remoteID))
	require.NoError(t, second.runPull(ctx))
	assert.Contains(t, secondConsole.output(), "Local changes were not uploaded")

	novel, err := second.library.GetNovel(ctx, "n1", true)
	require.NoError(t, err)
	assert.Equal(t, "Coiling Dragon", novel.Title)
	assert.Equal(t, "First paragraph", novel.Volumes[0].Chapters[0].Content[0].Translations[0].Text)

	require.NoError(t, second.runHistory(ctx, 0))
	assert.Contains(t, secondConsole.output(), "=== History of "+remoteID)
}
