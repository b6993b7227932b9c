package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/iudanet/novelsync/internal/models"
)

// runExport writes the local library with chapter content as one JSON file.
// API keys are left out unless withKeys is set.
func (c *Cli) runExport(ctx context.Context, path string, withKeys bool) error {
	snap, err := c.library.Snapshot(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to read library: %w", err)
	}
	if !withKeys {
		for i := range snap.AIModels {
			snap.AIModels[i].APIKey = ""
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	c.io.Printf("✓ Exported %d novel(s), %d AI model(s), %d cover(s) to %s (%s)\n",
		len(snap.Novels), len(snap.AIModels), len(snap.Covers), path, humanize.Bytes(uint64(len(data))))
	return nil
}

// runImport loads a JSON library file into the local store. Entities are
// upserted; with replace the whole library is replaced by the file.
// Novels without an id get a new one, missing edit times are set to now.
func (c *Cli) runImport(ctx context.Context, path string, replace bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	now := c.now().UTC()
	for _, n := range snap.Novels {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.LastEdited.IsZero() {
			n.LastEdited = now
		}
	}
	for i := range snap.AIModels {
		if snap.AIModels[i].ID == "" {
			snap.AIModels[i].ID = uuid.NewString()
		}
		if snap.AIModels[i].LastEdited.IsZero() {
			snap.AIModels[i].LastEdited = now
		}
	}
	for i := range snap.Covers {
		if snap.Covers[i].ID == "" {
			snap.Covers[i].ID = uuid.NewString()
		}
		if snap.Covers[i].AddedAt.IsZero() {
			snap.Covers[i].AddedAt = now
		}
	}
	if snap.Settings != nil && snap.Settings.LastEdited.IsZero() {
		snap.Settings.LastEdited = now
	}

	if replace {
		if err := c.library.ReplaceAll(ctx, &snap); err != nil {
			return fmt.Errorf("failed to replace library: %w", err)
		}
	} else if err := c.upsert(ctx, &snap); err != nil {
		return err
	}

	settings := ""
	if snap.Settings != nil {
		settings = " and settings"
	}
	c.io.Printf("✓ Imported %d novel(s), %d AI model(s), %d cover(s)%s\n",
		len(snap.Novels), len(snap.AIModels), len(snap.Covers), settings)
	return nil
}

func (c *Cli) upsert(ctx context.Context, snap *models.Snapshot) error {
	for _, n := range snap.Novels {
		if err := c.library.SaveNovel(ctx, n); err != nil {
			return fmt.Errorf("failed to save novel %s: %w", n.ID, err)
		}
	}
	for i := range snap.AIModels {
		if err := c.library.SaveAIModel(ctx, &snap.AIModels[i]); err != nil {
			return fmt.Errorf("failed to save AI model %s: %w", snap.AIModels[i].ID, err)
		}
	}
	for i := range snap.Covers {
		if err := c.library.SaveCover(ctx, &snap.Covers[i]); err != nil {
			return fmt.Errorf("failed to save cover %s: %w", snap.Covers[i].ID, err)
		}
	}
	if snap.Settings != nil {
		if err := c.library.SaveSettings(ctx, snap.Settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	return nil
}
