package gist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/novelsync/pkg/api"
)

// ResolveContent returns the full content of a file. Files the API reported
// as truncated (or returned without content) are fetched from their raw URL.
// If that fails the error wraps ErrTruncatedUnrecoverable.
func (c *Client) ResolveContent(ctx context.Context, f *api.GistFile) (string, error) {
	if f == nil {
		return "", fmt.Errorf("%w: file is missing", ErrTruncatedUnrecoverable)
	}
	if f.HasContent() {
		return *f.Content, nil
	}
	if f.RawURL == "" {
		return "", fmt.Errorf("%w: %s has no raw url", ErrTruncatedUnrecoverable, f.Filename)
	}

	var content string
	err := c.retry(ctx, func() error {
		var ferr error
		content, ferr = c.fetchRaw(ctx, f.RawURL)
		return ferr
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTruncatedUnrecoverable, f.Filename, err)
	}
	if f.Size > 0 && len(content) != f.Size {
		return "", fmt.Errorf("%w: %s: got %d bytes, expected %d",
			ErrTruncatedUnrecoverable, f.Filename, len(content), f.Size)
	}
	return content, nil
}

// fetchRaw downloads raw file content. Raw URLs live on a different host,
// so the token is not sent.
func (c *Client) fetchRaw(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create raw request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("raw request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read raw body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: "fetch raw", StatusCode: resp.StatusCode}
	}
	return string(body), nil
}

// ResolveAll resolves the content of every file of the gist.
// Files needing a raw fetch are downloaded concurrently. A failing file does
// not stop the others; its error is returned in the second map.
func (c *Client) ResolveAll(ctx context.Context, g *api.Gist) (map[string]string, map[string]error) {
	contents := make(map[string]string, len(g.Files))
	failures := make(map[string]error)

	type pendingFile struct {
		file *api.GistFile
		name string
	}
	var pending []pendingFile
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := g.Files[name]
		if f == nil {
			continue
		}
		if f.HasContent() {
			contents[name] = *f.Content
			continue
		}
		pending = append(pending, pendingFile{file: f, name: name})
	}
	if len(pending) == 0 {
		return contents, failures
	}

	c.logger.Info("fetching truncated files", "count", len(pending))

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.fetchLimit)
	for _, p := range pending {
		eg.Go(func() error {
			content, err := c.ResolveContent(egCtx, p.file)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[p.name] = err
				return nil
			}
			contents[p.name] = content
			return nil
		})
	}
	_ = eg.Wait()

	return contents, failures
}
