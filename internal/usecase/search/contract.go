package search

import (
	"context"

	"github.com/kupisearch/kupisearch/internal/domain"
	"github.com/kupisearch/kupisearch/internal/plan"
)

// Engine executes a built query plan against the catalog index.
type Engine interface {
	Search(ctx context.Context, req *plan.Request) ([]domain.Hit, int, error)
}

// Cache stores marshalled responses for repeated queries. Both operations
// are best effort.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}
