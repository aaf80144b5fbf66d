// Package search executes built query plans against the engine and converts
// raw hits into domain hits.
package search

import (
	"context"
	"fmt"

	"github.com/kupisearch/kupisearch/internal/domain"
	"github.com/kupisearch/kupisearch/internal/es"
	"github.com/kupisearch/kupisearch/internal/plan"
)

// engine is the consumer interface for plan execution (ISP).
type engine interface {
	Search(ctx context.Context, index string, body any) (*es.SearchResponse, error)
}

// Repo implements usecase/search.Engine.
type Repo struct {
	engine engine
	index  string
}

// New creates a search repository bound to a catalog index.
func New(e engine, index string) *Repo {
	return &Repo{engine: e, index: index}
}

// Search executes the plan and returns scored hits in engine order plus the
// engine's total hit count.
func (r *Repo) Search(ctx context.Context, req *plan.Request) ([]domain.Hit, int, error) {
	resp, err := r.engine.Search(ctx, r.index, req)
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", r.index, err)
	}

	hits := make([]domain.Hit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hits = append(hits, domain.Hit{Product: h.Source, Score: h.Score})
	}
	return hits, resp.Hits.Total.Value, nil
}
