// Package remote provides HTTP JSON adapters for the hosted content,
// identity and annotation services.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration shared by the remote service clients.
type Config struct {
	// BaseURL is the service API base URL. Required.
	BaseURL string

	// Token is an optional bearer token attached to every request.
	Token string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client is the shared HTTP plumbing under the service adapters.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a client for the remote services.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
	}
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out, which may be nil. A 404 maps to domain.ErrNotFound
// so callers can branch without inspecting transport detail.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("service error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("service error (status %d): %s", resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// pathEscape escapes a path segment such as a file ID.
func pathEscape(segment string) string {
	return url.PathEscape(segment)
}
