package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/novelsync/internal/client/gist"
	"github.com/iudanet/novelsync/pkg/api"
)

func (c *Cli) runHistory(ctx context.Context, limit int) error {
	if err := c.connect(ctx, c.resolver()); err != nil {
		return err
	}
	id, err := c.remoteID(ctx)
	if err != nil {
		return err
	}

	revisions, err := c.history.ListRevisions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list revisions: %w", err)
	}

	c.io.Printf("=== History of %s ===\n\n", id)
	if len(revisions) == 0 {
		c.io.Println("No revisions.")
		return nil
	}
	if limit > 0 && len(revisions) > limit {
		revisions = revisions[:limit]
	}
	for _, r := range revisions {
		c.io.Printf("%s  %-32s  +%d -%d\n",
			shortVersion(r.Version),
			when(r.CommittedAt, c.now()),
			r.ChangeStatus.Additions,
			r.ChangeStatus.Deletions)
	}
	c.io.Println()
	c.io.Println("Run 'novelsync diff <version>' to see the changed files.")
	return nil
}

type diffFileView struct {
	Status  gist.FileStatus
	Name    string
	Size    string
	Assumed bool
}

type diffView struct {
	Version string
	When    string
	Files   []diffFileView
}

// runDiff shows the files changed by a revision compared to the one before it.
// version may be a prefix of the full revision hash.
func (c *Cli) runDiff(ctx context.Context, version string) error {
	if err := c.connect(ctx, c.resolver()); err != nil {
		return err
	}
	id, err := c.remoteID(ctx)
	if err != nil {
		return err
	}

	revisions, err := c.history.ListRevisions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list revisions: %w", err)
	}
	idx, err := findRevision(revisions, version)
	if err != nil {
		return err
	}

	// ревизии идут от новой к старой
	rev := revisions[idx]
	newer, err := c.history.GetRevision(ctx, id, rev.Version)
	if err != nil {
		return fmt.Errorf("failed to get revision %s: %w", shortVersion(rev.Version), err)
	}
	var older *api.Gist
	if idx+1 < len(revisions) {
		older, err = c.history.GetRevision(ctx, id, revisions[idx+1].Version)
		if err != nil {
			return fmt.Errorf("failed to get revision %s: %w", shortVersion(revisions[idx+1].Version), err)
		}
	}

	view := diffView{
		Version: shortVersion(rev.Version),
		When:    when(rev.CommittedAt, c.now()),
	}
	for _, d := range gist.Changed(gist.DiffRevisions(older, newer)) {
		view.Files = append(view.Files, diffFileView{
			Status:  d.Status,
			Name:    d.Name,
			Size:    sizeDelta(d.OldSize, d.NewSize),
			Assumed: d.Assumed,
		})
	}
	return c.render("diff", diffTemplate, view)
}

func findRevision(revisions []api.Revision, version string) (int, error) {
	if version == "" {
		return -1, fmt.Errorf("revision version is required")
	}
	found := -1
	for i, r := range revisions {
		if !strings.HasPrefix(r.Version, version) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("revision %q is ambiguous", version)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("revision %q not found", version)
	}
	return found, nil
}
