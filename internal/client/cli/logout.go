package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogout(ctx context.Context, forgetRemote bool) error {
	c.io.Println("=== Logout ===")

	if err := c.vault.Delete(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if forgetRemote {
		cfg, err := c.library.GetSyncConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sync config: %w", err)
		}
		cfg.RemoteID = ""
		cfg.LastSyncTime = time.Time{}
		cfg.LastSyncedEntityIDs = nil
		if err := c.library.SaveSyncConfig(ctx, cfg); err != nil {
			return fmt.Errorf("failed to save sync config: %w", err)
		}
		c.io.Println("The remote link and sync history have been cleared.")
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("The stored token has been deleted. Your library is kept.")
	return nil
}
