package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kupisearch/kupisearch/internal/domain"
)

// RecreateIndex drops the index if it exists and creates it with the prefix
// search analyzers and catalog mappings.
func (c *Client) RecreateIndex(ctx context.Context, index string) error {
	res, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	exists := res.StatusCode == 200
	drain(res.Body)

	if exists {
		res, err = c.es.Indices.Delete([]string{index}, c.es.Indices.Delete.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
		}
		drain(res.Body)
		c.logger.Info("Deleted existing index", zap.String("index", index))
	}

	body := map[string]any{
		"settings": IndexSettings(),
		"mappings": IndexMappings(),
	}
	var buf bytes.Buffer
	if err = json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encode index body: %w", err)
	}

	res, err = c.es.Indices.Create(
		index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(&buf),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer drain(res.Body)
	if res.IsError() {
		return fmt.Errorf("create index %s: status %d: %s", index, res.StatusCode, readErrorBody(res.Body))
	}
	return nil
}

// BulkIndex loads products into the index via the bulk API.
func (c *Client) BulkIndex(ctx context.Context, index string, products []domain.Product) error {
	var buf bytes.Buffer
	for _, p := range products {
		meta := map[string]any{
			"index": map[string]any{"_index": index, "_id": p.ID},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(p); err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
	}

	res, err := c.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer drain(res.Body)
	if res.IsError() {
		return fmt.Errorf("bulk index: status %d: %s", res.StatusCode, readErrorBody(res.Body))
	}

	var br struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  any `json:"error"`
		} `json:"items"`
	}
	if err = json.NewDecoder(res.Body).Decode(&br); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadEngineResponse, err)
	}
	if br.Errors {
		failed := 0
		for _, item := range br.Items {
			for _, op := range item {
				if op.Status >= 300 {
					failed++
				}
			}
		}
		return fmt.Errorf("bulk index: %d of %d items failed", failed, len(products))
	}
	return nil
}

// Refresh makes freshly indexed documents visible to search.
func (c *Client) Refresh(ctx context.Context, index string) error {
	res, err := c.es.Indices.Refresh(
		c.es.Indices.Refresh.WithContext(ctx),
		c.es.Indices.Refresh.WithIndex(index),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	defer drain(res.Body)
	if res.IsError() {
		return fmt.Errorf("refresh %s: status %d", index, res.StatusCode)
	}
	return nil
}
