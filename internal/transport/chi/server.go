// Package chi exposes the search service over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kupisearch/kupisearch/internal/domain"
	healthuc "github.com/kupisearch/kupisearch/internal/usecase/health"
)

// Searcher runs the query pipeline for one request.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]domain.Hit, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	search      Searcher
	health      HealthChecker
	logger      *zap.Logger
	defaultTopK int
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, defaultTopK int, logger *zap.Logger) *Server {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Server{
		search:      search,
		health:      health,
		logger:      logger,
		defaultTopK: defaultTopK,
	}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.handleSearch)
	r.Post("/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type resultItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Brand      string  `json:"brand"`
	Price      float64 `json:"price"`
	Weight     string  `json:"weight"`
	WeightUnit string  `json:"weight_unit"`
	Score      float64 `json:"score"`
}

type searchResponse struct {
	Query     string       `json:"query"`
	Results   []resultItem `json:"results"`
	Total     int          `json:"total"`
	LatencyMs float64      `json:"latency_ms"`
}

// handleSearch serves GET and POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req searchRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	} else {
		req.Query = r.URL.Query().Get("query")
		if v := r.URL.Query().Get("top_k"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "top_k must be an integer")
				return
			}
			req.TopK = n
		}
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	if req.TopK <= 0 {
		req.TopK = s.defaultTopK
	}

	hits, err := s.search.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]resultItem, len(hits))
	for i, h := range hits {
		results[i] = resultItem{
			ID:         h.Product.ID,
			Name:       h.Product.Name,
			Category:   h.Product.Category,
			Brand:      h.Product.Brand,
			Price:      h.Product.Price,
			Weight:     h.Product.Weight,
			WeightUnit: h.Product.WeightUnit,
			Score:      h.Score,
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:     req.Query,
		Results:   results,
		Total:     len(results),
		LatencyMs: roundMs(time.Since(start)),
	})
}

// handleHealth serves GET /health. Reports degraded (503) whenever the
// engine connection cannot be verified.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, domain.ErrEmptyQuery.Error())
	case errors.Is(err, domain.ErrEngineUnavailable), errors.Is(err, domain.ErrBadEngineResponse):
		s.logger.Error("engine error", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/1000*100) / 100
}
