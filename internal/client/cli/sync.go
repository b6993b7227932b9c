package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/internal/client/sync"
	"github.com/iudanet/novelsync/internal/config"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	if err := c.connect(ctx, c.resolver()); err != nil {
		return err
	}

	c.io.Println("Starting synchronization with the remote...")
	result, err := c.syncService.Sync(ctx)
	c.printResult(result)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}
	return nil
}

func (c *Cli) runPull(ctx context.Context) error {
	c.io.Println("=== Pull ===")
	if err := c.connect(ctx, c.resolver()); err != nil {
		return err
	}

	result, err := c.syncService.Pull(ctx)
	c.printResult(result)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	c.io.Println("Local changes were not uploaded. Run 'novelsync sync' to upload them.")
	return nil
}

func (c *Cli) runPush(ctx context.Context) error {
	c.io.Println("=== Push ===")
	if err := c.connect(ctx, c.resolver()); err != nil {
		return err
	}

	result, err := c.syncService.Upload(ctx)
	c.printResult(result)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	return nil
}

// runWatch syncs every interval until ctx is cancelled. Failed rounds are
// reported and retried on the next tick; credential errors stop the loop.
func (c *Cli) runWatch(ctx context.Context, interval time.Duration) error {
	if err := c.connect(ctx, c.watchResolver()); err != nil {
		return err
	}
	if interval <= 0 {
		cfg, err := c.library.GetSyncConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sync config: %w", err)
		}
		interval = cfg.SyncInterval
	}
	if interval <= 0 {
		interval = c.cfg.Sync.Interval
	}

	c.io.Printf("Watching: syncing every %s, press Ctrl+C to stop.\n", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := c.syncService.Sync(ctx)
		switch {
		case err == nil:
			c.io.Printf("[%s] %s\n", c.now().Format(time.TimeOnly), result.Message)
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, gist.ErrAuth), errors.Is(err, gist.ErrConfig):
			return fmt.Errorf("watch stopped: %w", err)
		case errors.Is(err, sync.ErrSyncInProgress):
			c.logger.Debug("previous sync still running, tick skipped")
		default:
			c.io.Printf("[%s] sync failed: %v\n", c.now().Format(time.TimeOnly), err)
		}

		select {
		case <-ctx.Done():
			c.io.Println("Watch stopped.")
			return nil
		case <-ticker.C:
		}
	}
}

// watchResolver never prompts: nobody may be at the terminal.
func (c *Cli) watchResolver() sync.Resolver {
	if c.cfg.Sync.Resolution == "" || c.cfg.Sync.Resolution == config.ResolutionAsk {
		return sync.NewestWins
	}
	return c.resolver()
}

func (c *Cli) printResult(result *sync.SyncResult) {
	if result == nil {
		return
	}
	c.io.Println()
	if !result.Success {
		c.io.Printf("✗ %s\n", result.Message)
		return
	}

	c.io.Println("✓ " + result.Message)
	c.io.Println()
	if result.RemoteID != "" {
		c.io.Printf("Remote id:          %s\n", result.RemoteID)
	}
	c.io.Printf("Added from remote:  %d\n", result.Merge.Added)
	c.io.Printf("Updated locally:    %d\n", result.Merge.Updated)
	c.io.Printf("Kept local:         %d\n", result.Merge.KeptLocal)
	c.io.Printf("Removed locally:    %d\n", result.Merge.Dropped)
	c.io.Printf("Files written:      %d (%d batches)\n", result.Uploaded, result.Batches)
	c.io.Printf("Files removed:      %d\n", result.Deleted)
	c.io.Printf("Files unchanged:    %d\n", result.Unchanged)
	if len(result.Conflicts) > 0 {
		c.io.Printf("Conflicts resolved: %d\n", len(result.Conflicts))
	}
	if result.Recreated {
		c.io.Println()
		c.io.Println("⚠️  The remote gist was not found and has been created again.")
		c.io.Printf("Other devices must be pointed to the new id: %s\n", result.RemoteID)
	}
	if result.Partial() {
		c.io.Println()
		c.io.Printf("⚠️  %d remote entities could not be read and were left untouched:\n", len(result.Failures))
		for _, f := range result.Failures {
			c.io.Printf("  - %v\n", f)
		}
		c.io.Println("The last sync time was not updated.")
	}
}
