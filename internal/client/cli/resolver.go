package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/iudanet/novelsync/internal/client/iocli"
	"github.com/iudanet/novelsync/internal/models"
)

// promptResolver asks the user about every conflict.
type promptResolver struct {
	io iocli.IO
}

func (r *promptResolver) Resolve(ctx context.Context, conflicts []models.Conflict) ([]models.Resolution, error) {
	r.io.Println()
	r.io.Printf("%d conflict(s) found: both sides changed since the last sync.\n", len(conflicts))

	resolutions := make([]models.Resolution, 0, len(conflicts))
	for i, c := range conflicts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		title := c.Title
		if title == "" {
			title = c.EntityID
		}
		r.io.Println()
		r.io.Printf("[%d/%d] %s %q\n", i+1, len(conflicts), c.EntityType, title)
		r.io.Printf("  local:  edited %s%s\n", humanize.Time(c.LocalEdited), changedMark(c.LocalChanged))
		r.io.Printf("  remote: edited %s%s\n", humanize.Time(c.RemoteEdited), changedMark(c.RemoteChanged))

		choices := []models.Choice{models.ChoiceRemote, models.ChoiceLocal}
		items := make([]string, len(choices))
		for j, choice := range choices {
			items[j] = fmt.Sprintf("Keep %s copy", choice)
			if choice == c.Suggested {
				items[j] += " (newer)"
			}
		}

		idx, err := r.io.Select("Which copy to keep?", items)
		if err != nil {
			return nil, fmt.Errorf("conflict %s: %w", c.ID, err)
		}
		resolutions = append(resolutions, models.Resolution{ConflictID: c.ID, Choice: choices[idx]})
	}
	return resolutions, nil
}

func changedMark(changed bool) string {
	if changed {
		return ", changed since last sync"
	}
	return ""
}
