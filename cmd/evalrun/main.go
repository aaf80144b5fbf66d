// Command evalrun replays a CSV of test queries against a running API and
// writes a per-query report plus aggregate metrics.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kupisearch/kupisearch/internal/config"
	"github.com/kupisearch/kupisearch/internal/eval"
	logpkg "github.com/kupisearch/kupisearch/internal/logger"
)

func main() {
	queriesPath := flag.String("queries", "data/test_queries.csv", "path to the query CSV")
	outputPath := flag.String("output", "eval_results.csv", "path for the per-query report CSV")
	baseURL := flag.String("base-url", "http://localhost:8080", "base URL of the running API")
	topK := flag.Int("top-k", 3, "results to request per query")
	flag.Parse()

	env := config.GetEnv()

	logger, err := logpkg.NewLogger(env, "")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	in, err := os.Open(*queriesPath)
	if err != nil {
		logger.Fatal("Failed to open query CSV", zap.Error(err))
	}
	defer func() { _ = in.Close() }()

	queries, err := eval.ReadQueries(in)
	if err != nil {
		logger.Fatal("Failed to parse query CSV", zap.Error(err))
	}
	if len(queries) == 0 {
		logger.Fatal("Query CSV contains no queries")
	}

	logger.Info("Starting evaluation run",
		zap.Int("queries", len(queries)),
		zap.String("base_url", *baseURL),
		zap.Int("top_k", *topK),
	)

	runner := eval.NewRunner(*baseURL, *topK, logger)
	results, metrics := runner.Run(context.Background(), queries)

	out, err := os.Create(*outputPath)
	if err != nil {
		logger.Fatal("Failed to create report file", zap.Error(err))
	}
	defer func() { _ = out.Close() }()

	if err := eval.WriteResults(out, results); err != nil {
		logger.Fatal("Failed to write report", zap.Error(err))
	}

	metricsPath := metricsPathFor(*outputPath)
	mf, err := os.Create(metricsPath)
	if err != nil {
		logger.Fatal("Failed to create metrics file", zap.Error(err))
	}
	defer func() { _ = mf.Close() }()

	if err := eval.WriteMetrics(mf, metrics); err != nil {
		logger.Fatal("Failed to write metrics", zap.Error(err))
	}

	logger.Info("Evaluation complete",
		zap.Int("total_queries", metrics.TotalQueries),
		zap.Int("queries_with_results", metrics.QueriesWithResults),
		zap.Float64("coverage_percent", metrics.CoveragePercent),
		zap.Float64("avg_latency_ms", metrics.AvgLatencyMs),
		zap.String("report", *outputPath),
		zap.String("metrics", metricsPath),
	)
}

// metricsPathFor places metrics.json next to the report file.
func metricsPathFor(output string) string {
	dir := filepath.Dir(output)
	base := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	return filepath.Join(dir, base+"_metrics.json")
}
