// Package gist is the client of the remote blob store (GitHub Gist API).
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iudanet/novelsync/internal/validation"
	"github.com/iudanet/novelsync/pkg/api"
)

const (
	// DefaultBaseURL is the GitHub REST API endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout bounds every single HTTP call.
	DefaultTimeout = 30 * time.Second
	// DefaultBatchSize is the number of files written per update call.
	DefaultBatchSize = 10
	// DefaultMaxRetries is the number of retries of idempotent reads.
	DefaultMaxRetries = 3

	apiVersion = "2022-11-28"
	userAgent  = "novelsync"
)

// Options configure a Client.
type Options struct {
	HTTPClient   *http.Client
	Logger       *slog.Logger
	BaseURL      string
	Username     string
	Token        string
	Description  string
	Timeout      time.Duration
	RetryBackoff time.Duration
	BatchSize    int
	MaxRetries   int
	// FetchConcurrency limits parallel raw-content downloads.
	FetchConcurrency int
}

// Client is the remote blob store client.
type Client struct {
	httpClient   *http.Client
	logger       *slog.Logger
	baseURL      string
	username     string
	token        string
	description  string
	retryBackoff time.Duration
	batchSize    int
	maxRetries   int
	fetchLimit   int
}

// NewClient validates credentials and creates a client.
// Invalid credentials fail with ErrConfig without touching the network.
func NewClient(opts Options) (*Client, error) {
	if err := validation.ValidateCredentials(validation.Credentials{
		Username: opts.Username,
		Token:    opts.Token,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	c := &Client{
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		username:     opts.Username,
		token:        opts.Token,
		description:  opts.Description,
		retryBackoff: opts.RetryBackoff,
		batchSize:    opts.BatchSize,
		maxRetries:   opts.MaxRetries,
		fetchLimit:   opts.FetchConcurrency,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: NewLoggingTransport(http.DefaultTransport, c.logger),
		}
	}
	if c.batchSize <= 0 {
		c.batchSize = DefaultBatchSize
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if c.retryBackoff <= 0 {
		c.retryBackoff = 500 * time.Millisecond
	}
	if c.fetchLimit <= 0 {
		c.fetchLimit = 4
	}
	if c.description == "" {
		c.description = "novelsync library backup"
	}
	return c, nil
}

// BatchSize returns the number of files per update call.
func (c *Client) BatchSize() int {
	return c.batchSize
}

func checkID(id string) error {
	if err := validation.ValidateGistID(id); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

// Get fetches a gist with its files.
func (c *Client) Get(ctx context.Context, id string) (*api.Gist, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var g api.Gist
	if err := c.doRead(ctx, "get gist", "/gists/"+id, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create creates a new secret gist and returns it. The id is chosen by the remote.
func (c *Client) Create(ctx context.Context, files map[string]api.FileChange) (*api.Gist, error) {
	upserts := make(map[string]api.FileChange, len(files))
	for name, fc := range files {
		if !fc.IsDelete() {
			upserts[name] = fc
		}
	}
	if len(upserts) == 0 {
		return nil, fmt.Errorf("create gist: at least one file is required")
	}

	public := false
	req := api.GistRequest{
		Description: c.description,
		Public:      &public,
		Files:       upserts,
	}
	var g api.Gist
	if err := c.doRequest(ctx, "create gist", http.MethodPost, c.baseURL+"/gists", req, &g); err != nil {
		return nil, err
	}
	if g.ID == "" {
		return nil, fmt.Errorf("create gist: remote returned no id")
	}
	return &g, nil
}

// Update applies file changes in a single call.
func (c *Client) Update(ctx context.Context, id string, files map[string]api.FileChange) (*api.Gist, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var g api.Gist
	req := api.GistRequest{Files: files}
	if err := c.doRequest(ctx, "update gist", http.MethodPatch, c.baseURL+"/gists/"+id, req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes the gist.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return c.doRequest(ctx, "delete gist", http.MethodDelete, c.baseURL+"/gists/"+id, nil, nil)
}

// ListRevisions returns the revisions of a gist, newest first.
func (c *Client) ListRevisions(ctx context.Context, id string) ([]api.Revision, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var revs []api.Revision
	if err := c.doRead(ctx, "list revisions", "/gists/"+id+"/commits?per_page=100", &revs); err != nil {
		return nil, err
	}
	return revs, nil
}

// GetRevision fetches the gist as of a revision.
func (c *Client) GetRevision(ctx context.Context, id, version string) (*api.Gist, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("%w: revision cannot be empty", ErrConfig)
	}
	var g api.Gist
	if err := c.doRead(ctx, "get revision", "/gists/"+id+"/"+version, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// doRead performs an idempotent GET with retries on temporary failures.
func (c *Client) doRead(ctx context.Context, op, path string, result any) error {
	return c.retry(ctx, func() error {
		return c.doRequest(ctx, op, http.MethodGet, c.baseURL+path, nil, result)
	})
}

// retry runs fn with exponential backoff. Only network errors and
// temporary API errors are retried.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)

	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return backoff.Permanent(err)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		c.logger.Debug("retrying remote call", "error", err)
		return err
	}, policy)
}

// doRequest выполняет HTTP запрос к API
func (c *Client) doRequest(ctx context.Context, op, method, url string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
			apiErr.RateLimit = true
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%s: failed to decode response: %w", op, err)
		}
	}
	return nil
}
