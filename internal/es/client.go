// Package es wraps the official Elasticsearch client behind the small
// surface the service needs: execute a search body, probe liveness, and
// manage the catalog index for the loader.
package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/kupisearch/kupisearch/internal/domain"
)

// Config holds connection parameters for the engine.
type Config struct {
	Addrs    []string
	Username string
	Password string
	// RequestTimeout bounds each engine call; 0 means defaultRequestTimeout.
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 10 * time.Second

// Client is a thin wrapper over the Elasticsearch HTTP client. Safe for
// concurrent use; the underlying transport is connection-pooled.
type Client struct {
	es      *elasticsearch.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates an engine client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{es: es, timeout: timeout, logger: logger}, nil
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer drain(res.Body)
	if res.IsError() {
		return fmt.Errorf("%w: ping returned status %d", domain.ErrEngineUnavailable, res.StatusCode)
	}
	return nil
}

// WaitForReady polls Ping until the engine responds or timeout expires.
// Used at startup only; the per-request path never retries.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for engine: %w", ctx.Err())
		case <-ticker.C:
			if err := c.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// SearchResponse mirrors the engine hit envelope.
type SearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []RawHit `json:"hits"`
	} `json:"hits"`
}

// RawHit is a single scored hit as returned by the engine.
type RawHit struct {
	Score  float64        `json:"_score"`
	Source domain.Product `json:"_source"`
}

// Search executes a search body against the given index. Connectivity
// failures map to ErrEngineUnavailable; a response that does not decode into
// the expected hit envelope maps to ErrBadEngineResponse.
func (c *Client) Search(ctx context.Context, index string, body any) (*SearchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer drain(res.Body)

	if res.IsError() {
		return nil, fmt.Errorf("%w: search returned status %d: %s",
			domain.ErrBadEngineResponse, res.StatusCode, readErrorBody(res.Body))
	}

	var sr SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadEngineResponse, err)
	}
	return &sr, nil
}

// readErrorBody extracts a short diagnostic snippet from an error response.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(data) == 0 {
		return "<no body>"
	}
	return string(data)
}

// drain consumes and closes a response body so the connection is reusable.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
