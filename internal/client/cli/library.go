package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type novelView struct {
	ID          string
	Title       string
	Edited      string
	Chapters    int
	WithContent int
}

func (c *Cli) runLibrary(ctx context.Context) error {
	snap, err := c.library.Snapshot(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to read library: %w", err)
	}

	c.io.Println("=== Library ===")
	c.io.Println()
	if len(snap.Novels) == 0 {
		c.io.Println("No novels. Use 'novelsync import <file>' or 'novelsync pull'.")
		return nil
	}

	novels := snap.Novels
	sort.Slice(novels, func(i, j int) bool {
		return strings.ToLower(novels[i].Title) < strings.ToLower(novels[j].Title)
	})
	for _, n := range novels {
		view := novelView{
			ID:       n.ID,
			Title:    n.Title,
			Edited:   when(n.LastEdited, c.now()),
			Chapters: n.ChapterCount(),
		}
		for _, v := range n.Volumes {
			for _, ch := range v.Chapters {
				if ch.HasContent() {
					view.WithContent++
				}
			}
		}
		if err := c.render("novel", novelLineTemplate, view); err != nil {
			return err
		}
	}
	c.io.Println()
	c.io.Printf("Total: %d novel(s)\n", len(novels))
	return nil
}
