// Package cli implements the novelsync commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/iudanet/novelsync/internal/client/auth"
	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/internal/client/iocli"
	"github.com/iudanet/novelsync/internal/client/storage"
	"github.com/iudanet/novelsync/internal/client/sync"
	"github.com/iudanet/novelsync/internal/config"
	"github.com/iudanet/novelsync/pkg/api"
)

//go:generate moq -out history_mock.go . History

// errNotLoggedIn is returned by remote commands when no token is available.
var errNotLoggedIn = errors.New("not logged in: run 'novelsync login' or set " + config.EnvToken)

// Library is the local store used by the commands.
type Library interface {
	storage.LibraryStorage
	storage.ContentStorage
	storage.SyncConfigStorage
}

// History reads the revision history of the remote.
type History interface {
	ListRevisions(ctx context.Context, id string) ([]api.Revision, error)
	GetRevision(ctx context.Context, id, version string) (*api.Gist, error)
}

type Cli struct {
	io          iocli.IO
	cfg         *config.Config
	logger      *slog.Logger
	library     Library
	vault       *auth.Vault
	syncService sync.Service
	history     History
	now         func() time.Time
	closers     []io.Closer
}

// New creates the command runner. The sync service is created on the
// first command that talks to the remote.
func New(console iocli.IO, cfg *config.Config, library Library, vault *auth.Vault, logger *slog.Logger) *Cli {
	return &Cli{
		io:      console,
		cfg:     cfg,
		logger:  logger,
		library: library,
		vault:   vault,
		now:     time.Now,
	}
}

// Close releases the store and the log file.
func (c *Cli) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// credentials returns the GitHub credentials with priority:
// 1. NOVELSYNC_GIST_TOKEN (username from config or the vault)
// 2. The vault, unlocked with NOVELSYNC_PASSPHRASE or an interactive prompt
func (c *Cli) credentials(ctx context.Context) (*auth.Credentials, error) {
	if c.cfg.Token != "" {
		username := c.cfg.Remote.Username
		if username == "" {
			stored, err := c.vault.Username(ctx)
			if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
				return nil, fmt.Errorf("failed to read stored username: %w", err)
			}
			username = stored
		}
		if username == "" {
			return nil, fmt.Errorf("%s is set but the username is unknown: set %s", config.EnvToken, config.EnvUser)
		}
		return &auth.Credentials{Username: username, Token: c.cfg.Token}, nil
	}

	exists, err := c.vault.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}
	if !exists {
		return nil, errNotLoggedIn
	}

	passphrase := c.cfg.Passphrase
	if passphrase == "" {
		passphrase, err = c.io.ReadPassword("Passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
	}
	creds, err := c.vault.Load(ctx, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock credentials: %w", err)
	}
	return creds, nil
}

// connect creates the gist client and the sync service unless they are set.
func (c *Cli) connect(ctx context.Context, resolver sync.Resolver) error {
	if c.syncService != nil && c.history != nil {
		return nil
	}
	creds, err := c.credentials(ctx)
	if err != nil {
		return err
	}

	client, err := gist.NewClient(gist.Options{
		Logger:           c.logger,
		BaseURL:          c.cfg.Remote.APIURL,
		Username:         creds.Username,
		Token:            creds.Token,
		Timeout:          c.cfg.Remote.RequestTimeout,
		BatchSize:        c.cfg.Remote.BatchSize,
		MaxRetries:       c.cfg.Remote.MaxRetries,
		FetchConcurrency: c.cfg.Remote.FetchConcurrency,
	})
	if err != nil {
		return err
	}

	if c.history == nil {
		c.history = client
	}
	if c.syncService == nil {
		c.syncService = sync.NewService(client, c.library, c.library, c.library, resolver, c.logger, sync.Options{
			Progress: newProgress(c.io).update,
			Plan: sync.PlanOptions{
				MaxFileBytes: c.cfg.Sync.MaxFileBytes,
				Compress:     c.cfg.Sync.Compress,
				Tolerance:    c.cfg.Sync.VerifyTolerance,
			},
		})
	}
	return nil
}

// resolver returns the conflict resolver configured by sync.resolution.
func (c *Cli) resolver() sync.Resolver {
	switch c.cfg.Sync.Resolution {
	case config.ResolutionNewest:
		return sync.NewestWins
	case config.ResolutionLocal:
		return sync.LocalWins
	case config.ResolutionRemote:
		return sync.RemoteWins
	default:
		return &promptResolver{io: c.io}
	}
}

// remoteID returns the configured remote id or sync.ErrNoRemoteID.
func (c *Cli) remoteID(ctx context.Context) (string, error) {
	cfg, err := c.library.GetSyncConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load sync config: %w", err)
	}
	if cfg.RemoteID == "" {
		return "", fmt.Errorf("%w: run 'novelsync sync' first", sync.ErrNoRemoteID)
	}
	return cfg.RemoteID, nil
}
