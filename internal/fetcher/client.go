// Package fetcher performs timed HTTP GETs with a fast-then-slow retry
// policy: a short first attempt, a brief cooldown, then one attempt with a
// longer timeout. Timeouts, non-2xx statuses, and transport failures all
// collapse to a single failure signal.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Acceptable status code range, upper bound exclusive.
const (
	httpStatusOKMin = 200
	httpStatusOKMax = 300
)

// Client fetches page bodies over HTTP.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// New creates a fetch client with the given configuration.
func New(cfg Config) *Client {
	return &Client{
		// Per-request timeouts come from context deadlines, not the client.
		httpClient: &http.Client{},
		cfg:        cfg.WithDefaults(),
	}
}

// Fetch performs a single GET bounded by the given timeout and returns the
// response body. Non-2xx statuses are errors.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < httpStatusOKMin || resp.StatusCode >= httpStatusOKMax {
		return "", fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	return string(body), nil
}

// FetchWithRetry fetches with the fast timeout, and on any failure waits the
// cooldown and tries once more with the slow timeout. A second failure is
// returned as a single composite error; there are no further retries.
func (c *Client) FetchWithRetry(ctx context.Context, url string) (string, error) {
	body, firstErr := c.Fetch(ctx, url, c.cfg.FastTimeout)
	if firstErr == nil {
		return body, nil
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(c.cfg.RetryCooldown):
	}

	body, retryErr := c.Fetch(ctx, url, c.cfg.SlowTimeout)
	if retryErr != nil {
		return "", fmt.Errorf("fetch failed after retry (first attempt: %v): %w", firstErr, retryErr)
	}

	return body, nil
}
