// Package eval is the offline evaluation harness: it replays a CSV of test
// queries against a running service and reports coverage and latency.
package eval

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Query is one test case from the input CSV.
type Query struct {
	Query string
	Site  string
	Type  string
	Notes string
}

// Result captures the top hits for one evaluated query.
type Result struct {
	Query        Query
	Top          []TopHit
	LatencyMs    float64
	TotalResults int
	Err          string
}

// TopHit is a single ranked result.
type TopHit struct {
	Name     string
	Score    float64
	Category string
}

// Metrics aggregates the evaluation run.
type Metrics struct {
	TotalQueries       int     `json:"total_queries"`
	SuccessfulQueries  int     `json:"successful_queries"`
	QueriesWithResults int     `json:"queries_with_results"`
	CoveragePercent    float64 `json:"coverage_percent"`
	AvgLatencyMs       float64 `json:"avg_latency_ms"`
}

// Runner replays queries against the HTTP API.
type Runner struct {
	baseURL string
	topK    int
	client  *http.Client
	logger  *zap.Logger
}

// NewRunner creates a Runner targeting baseURL.
func NewRunner(baseURL string, topK int, logger *zap.Logger) *Runner {
	if topK <= 0 {
		topK = 3
	}
	return &Runner{
		baseURL: baseURL,
		topK:    topK,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// ReadQueries parses the input CSV. The first row is a header; the "query"
// column is required, "site", "type" and "notes" are carried through.
func ReadQueries(r io.Reader) ([]Query, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	qIdx, ok := col["query"]
	if !ok {
		return nil, fmt.Errorf("input CSV has no %q column", "query")
	}

	var queries []Query
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		q := Query{Query: row[qIdx]}
		if i, ok := col["site"]; ok && i < len(row) {
			q.Site = row[i]
		}
		if i, ok := col["type"]; ok && i < len(row) {
			q.Type = row[i]
		}
		if i, ok := col["notes"]; ok && i < len(row) {
			q.Notes = row[i]
		}
		if q.Query != "" {
			queries = append(queries, q)
		}
	}
	return queries, nil
}

type apiResponse struct {
	Results []struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Score    float64 `json:"score"`
	} `json:"results"`
	LatencyMs float64 `json:"latency_ms"`
}

// Run evaluates every query sequentially and returns per-query results plus
// aggregate metrics.
func (r *Runner) Run(ctx context.Context, queries []Query) ([]Result, Metrics) {
	results := make([]Result, 0, len(queries))
	var totalLatency float64
	var successful, withResults int

	for i, q := range queries {
		r.logger.Info("Evaluating query",
			zap.Int("n", i+1),
			zap.Int("of", len(queries)),
			zap.String("query", q.Query),
		)

		res := r.runOne(ctx, q)
		if res.Err == "" {
			successful++
			totalLatency += res.LatencyMs
			if res.TotalResults > 0 {
				withResults++
			}
		}
		results = append(results, res)
	}

	m := Metrics{
		TotalQueries:       len(queries),
		SuccessfulQueries:  successful,
		QueriesWithResults: withResults,
	}
	if len(queries) > 0 {
		m.CoveragePercent = round2(float64(withResults) / float64(len(queries)) * 100)
	}
	if successful > 0 {
		m.AvgLatencyMs = round2(totalLatency / float64(successful))
	}
	return results, m
}

func (r *Runner) runOne(ctx context.Context, q Query) Result {
	res := Result{Query: q}

	u := fmt.Sprintf("%s/search?query=%s&top_k=%d",
		r.baseURL, url.QueryEscape(q.Query), r.topK)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		res.Err = err.Error()
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Sprintf("status %d", resp.StatusCode)
		res.LatencyMs = elapsed
		return res
	}

	var ar apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		res.Err = err.Error()
		return res
	}

	res.LatencyMs = ar.LatencyMs
	if res.LatencyMs == 0 {
		res.LatencyMs = elapsed
	}
	res.TotalResults = len(ar.Results)
	for _, item := range ar.Results {
		res.Top = append(res.Top, TopHit{Name: item.Name, Score: item.Score, Category: item.Category})
		if len(res.Top) >= 3 {
			break
		}
	}
	return res
}

// WriteResults writes the per-query report CSV with the top-3 hits per row.
func WriteResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	header := []string{
		"query", "site", "type", "notes",
		"top_1", "top_1_score", "top_1_category",
		"top_2", "top_2_score", "top_2_category",
		"top_3", "top_3_score", "top_3_category",
		"latency_ms", "total_results", "judgement",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, res := range results {
		row := []string{res.Query.Query, res.Query.Site, res.Query.Type, res.Query.Notes}
		for i := 0; i < 3; i++ {
			if i < len(res.Top) {
				row = append(row,
					res.Top[i].Name,
					strconv.FormatFloat(res.Top[i].Score, 'f', -1, 64),
					res.Top[i].Category,
				)
			} else {
				row = append(row, "", "", "")
			}
		}
		judgement := ""
		if res.Err != "" {
			judgement = "ERROR: " + res.Err
		}
		row = append(row,
			strconv.FormatFloat(round2(res.LatencyMs), 'f', -1, 64),
			strconv.Itoa(res.TotalResults),
			judgement,
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteMetrics writes the aggregate metrics as indented JSON.
func WriteMetrics(w io.Writer, m Metrics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
