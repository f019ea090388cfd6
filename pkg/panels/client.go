// Package panels provides clients for the backend services surfaced in
// the editor's side panels: data lists, outbound email, and model
// listings.
//
// All clients share a [Client] that handles retries, caching, and common
// request plumbing against a single backend base URL (the serve command,
// or a deployed equivalent).
package panels

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the backend reports a missing resource.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client provides shared HTTP functionality for the panel clients.
// It handles caching, retry logic, and request plumbing.
type Client struct {
	base  string
	http  *http.Client
	cache cache.Cache
}

// NewClient creates a Client for the backend at base (e.g.
// "http://localhost:8000"). Pass a [cache.NullCache] to disable caching.
func NewClient(base string, c cache.Cache) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: httpTimeout},
		cache: c,
	}
}

// Cached retrieves a value from cache or executes fetch and caches the
// result for ttl. If refresh is true, the cache is bypassed and fetch is
// always called. The fetch function should populate v.
func (c *Client) Cached(ctx context.Context, key string, ttl time.Duration, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, ttl)
	}
	return nil
}

// Get performs a GET against the backend and JSON-decodes the response
// into v, retrying transient failures.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, nil, v)
	})
}

// Post performs a POST with a JSON body and decodes the response into v.
// Pass nil for v to discard the response body.
func (c *Client) Post(ctx context.Context, path string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.do(ctx, http.MethodPost, path, payload, v)
	})
}

// Delete performs a DELETE against the backend.
func (c *Client) Delete(ctx context.Context, path string) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.do(ctx, http.MethodDelete, path, nil, nil)
	})
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
