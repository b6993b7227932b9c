package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/novelsync/internal/client/auth"
	"github.com/iudanet/novelsync/internal/client/iocli"
	"github.com/iudanet/novelsync/internal/client/storage/boltdb"
	"github.com/iudanet/novelsync/internal/config"
)

const (
	testUsername   = "reader"
	testToken      = "ghp_0123456789abcdefghijKLMN"
	testPassphrase = "correct horse battery"
)

var testNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

// testConsole записывает весь вывод и отвечает на запросы из очередей.
type testConsole struct {
	*iocli.IOMock
	out       strings.Builder
	inputs    []string
	passwords []string
	choices   []int
	mu        stdsync.Mutex
}

func newTestConsole() *testConsole {
	tc := &testConsole{}
	tc.IOMock = &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			tc.write(fmt.Sprintln(a...))
		},
		PrintfFunc: func(format string, a ...any) {
			tc.write(fmt.Sprintf(format, a...))
		},
		WriteFunc: func(p []byte) (int, error) {
			tc.write(string(p))
			return len(p), nil
		},
		ReadInputFunc: func(prompt string) (string, error) {
			return pop(&tc.inputs)
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return pop(&tc.passwords)
		},
		SelectFunc: func(label string, items []string) (int, error) {
			if len(tc.choices) == 0 {
				return -1, iocli.ErrNoChoice
			}
			choice := tc.choices[0]
			tc.choices = tc.choices[1:]
			return choice, nil
		},
	}
	return tc
}

func (tc *testConsole) write(s string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.out.WriteString(s)
}

func (tc *testConsole) output() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.out.String()
}

func pop(queue *[]string) (string, error) {
	if len(*queue) == 0 {
		return "", io.EOF
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestCli создает Cli с настоящим bbolt хранилищем во временной директории.
func newTestCli(t *testing.T) (*Cli, *testConsole) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	cfg := config.Default()
	cfg.Sync.Resolution = config.ResolutionNewest
	console := newTestConsole()
	logger := discardLogger()

	c := New(console, cfg, store, auth.NewVault(store, logger), logger)
	c.now = func() time.Time { return testNow }
	return c, console
}

// login сохраняет тестовые учетные данные в хранилище.
func login(t *testing.T, c *Cli) {
	t.Helper()
	require.NoError(t, c.vault.Save(context.Background(), auth.Credentials{
		Username: testUsername,
		Token:    testToken,
	}, testPassphrase))
}

func TestWhen(t *testing.T) {
	assert.Equal(t, "never", when(time.Time{}, testNow))
	assert.Contains(t, when(testNow.Add(-3*time.Hour), testNow), "3 hours ago")
}

func TestSizeDelta(t *testing.T) {
	tests := []struct {
		name   string
		before int
		after  int
		want   string
	}{
		{name: "both empty", want: ""},
		{name: "added", after: 2048, want: "2.0 kB"},
		{name: "removed", before: 2048, want: "2.0 kB"},
		{name: "same", before: 10, after: 10, want: "10 B"},
		{name: "changed", before: 1000, after: 3000, want: "1.0 kB -> 3.0 kB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sizeDelta(tt.before, tt.after))
		})
	}
}

func TestShortVersion(t *testing.T) {
	assert.Equal(t, "0123abcd", shortVersion("0123abcdef456789"))
	assert.Equal(t, "abc", shortVersion("abc"))
}
