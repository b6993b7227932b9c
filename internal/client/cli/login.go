package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/novelsync/internal/client/auth"
	"github.com/iudanet/novelsync/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем username, значение из конфига используется по умолчанию
	username := c.cfg.Remote.Username
	prompt := "GitHub username: "
	if username != "" {
		prompt = fmt.Sprintf("GitHub username [%s]: ", username)
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if input != "" {
		username = input
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	token, err := c.io.ReadPassword("Personal access token (gist scope): ")
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	passphrase := c.cfg.Passphrase
	if passphrase == "" {
		passphrase, err = c.io.ReadPassword("Passphrase to encrypt the token: ")
		if err != nil {
			return fmt.Errorf("failed to read passphrase: %w", err)
		}
		repeat, err := c.io.ReadPassword("Repeat passphrase: ")
		if err != nil {
			return fmt.Errorf("failed to read passphrase: %w", err)
		}
		if repeat != passphrase {
			return fmt.Errorf("passphrases do not match")
		}
	}

	if err := c.vault.Save(ctx, auth.Credentials{Username: username, Token: token}, passphrase); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", username)
	c.io.Println("The token is stored encrypted with your passphrase.")
	return nil
}

// runLink points the local library at an existing remote gist, e.g. the
// one created by another device. The next sync merges it as a first sync.
func (c *Cli) runLink(ctx context.Context, id string) error {
	if err := validation.ValidateGistID(id); err != nil {
		return fmt.Errorf("invalid gist id: %w", err)
	}
	cfg, err := c.library.GetSyncConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync config: %w", err)
	}
	if cfg.RemoteID == id {
		c.io.Printf("Already linked to %s\n", id)
		return nil
	}

	previous := cfg.RemoteID
	cfg.RemoteID = id
	cfg.LastSyncTime = time.Time{}
	cfg.LastSyncedEntityIDs = nil
	if err := c.library.SaveSyncConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save sync config: %w", err)
	}

	if previous != "" {
		c.io.Printf("Unlinked from %s\n", previous)
	}
	c.io.Printf("✓ Linked to remote %s\n", id)
	c.io.Println("Run 'novelsync sync' to merge it with the local library.")
	return nil
}
