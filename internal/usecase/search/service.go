// Package search orchestrates the query pipeline: normalize, repair
// encoding, correct keyboard layout, collapse split words, extract
// quantities, build the engine plan, execute it, and filter noise from the
// candidates. The pipeline is stateless and request-scoped; the only
// blocking step is the engine call.
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kupisearch/kupisearch/internal/domain"
	"github.com/kupisearch/kupisearch/internal/logger"
	"github.com/kupisearch/kupisearch/internal/metrics"
	"github.com/kupisearch/kupisearch/internal/plan"
	"github.com/kupisearch/kupisearch/internal/query"
	"github.com/kupisearch/kupisearch/internal/rank"
)

const defaultTopK = 5

// Service handles product search requests.
type Service struct {
	engine     Engine
	cache      Cache
	logger     *zap.Logger
	perWordCap int
}

// New creates a search service.
func New(engine Engine, log *zap.Logger) *Service {
	return &Service{engine: engine, logger: log}
}

// WithCache attaches an optional result cache.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// WithPerWordCap overrides the per-word clause cap for multi-word queries.
func (s *Service) WithPerWordCap(n int) *Service {
	s.perWordCap = n
	return s
}

// Search runs the full pipeline for one raw query. topK <= 0 falls back to
// the default. Returns ErrEmptyQuery when no query text remains after
// normalization; engine failures propagate wrapped.
func (s *Service) Search(ctx context.Context, rawQuery string, topK int) ([]domain.Hit, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	q := query.Normalize(rawQuery)
	if q == "" {
		return nil, domain.ErrEmptyQuery
	}

	log := logger.FromContext(ctx)

	q = query.RepairEncoding(q)
	q = s.correctLayout(q, log)

	collapsed := query.CollapseSpaces(q)
	residual, numbers := query.ExtractNumbers(q)
	collapsedResidual := residual
	if collapsed != q {
		collapsedResidual, _ = query.ExtractNumbers(collapsed)
	}

	// A query that is nothing but a quantity ("1", "0.5 л") would otherwise
	// lose all lexical clauses; fall back to the corrected text so prefix
	// matching still fires. The extracted magnitude keeps its range clause.
	lexical := residual
	if lexical == "" {
		lexical = q
	}

	req := plan.Build(plan.Input{
		Query:      lexical,
		Collapsed:  collapsedResidual,
		Numbers:    numbers,
		TopK:       topK,
		PerWordCap: s.perWordCap,
	})

	key := cacheKey(q, topK)
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var hits []domain.Hit
			if err := json.Unmarshal(data, &hits); err == nil {
				metrics.ResultCacheTotal.WithLabelValues("hit").Inc()
				return hits, nil
			}
			log.Warn("Failed to decode cached response", zap.String("key", key))
		}
		metrics.ResultCacheTotal.WithLabelValues("miss").Inc()
	}

	candidates, total, err := s.engine.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("engine search: %w", err)
	}
	log.Debug("Engine candidates",
		zap.Int("count", len(candidates)),
		zap.Int("total", total),
	)

	hits, outcome := rank.Filter(candidates, q, topK)
	metrics.FilterStageTotal.WithLabelValues(string(outcome.Stage)).Inc()
	if outcome.Stage == rank.StageRaw {
		log.Warn("Noise filter rejected all candidates, returning raw top hits",
			zap.String("query", q),
			zap.Int("candidates", len(candidates)),
		)
	}

	if s.cache != nil {
		if data, err := json.Marshal(hits); err == nil {
			s.cache.Set(ctx, key, data)
		}
	}

	return hits, nil
}

// correctLayout applies keyboard layout correction under the conservative
// gate: only very short pure-Latin queries whose remapped form is Cyrillic.
func (s *Service) correctLayout(q string, log *zap.Logger) string {
	if query.HasCyrillic(q) {
		return q
	}
	fixed, ok := query.FixLayout(q)
	if !ok || !query.HasCyrillic(fixed) {
		return q
	}
	if utf8.RuneCountInString(fixed) != utf8.RuneCountInString(q) {
		return q
	}
	log.Info("Keyboard layout corrected",
		zap.String("from", q),
		zap.String("to", fixed),
	)
	metrics.LayoutCorrectionsTotal.Inc()
	return fixed
}

func cacheKey(q string, topK int) string {
	h := sha256.Sum256([]byte(q))
	return "kupisearch:results:" + hex.EncodeToString(h[:]) + ":" + strconv.Itoa(topK)
}
