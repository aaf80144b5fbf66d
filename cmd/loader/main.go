// Command loader recreates the catalog index and bulk-loads a product feed
// into it.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kupisearch/kupisearch/internal/catalog"
	"github.com/kupisearch/kupisearch/internal/config"
	"github.com/kupisearch/kupisearch/internal/es"
	logpkg "github.com/kupisearch/kupisearch/internal/logger"
)

func main() {
	catalogPath := flag.String("catalog", "data/catalog.xml", "path to the XML product feed")
	flag.Parse()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog loader",
		zap.String("catalog", *catalogPath),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.String("index", cfg.Engine.Index),
	)

	f, err := os.Open(*catalogPath)
	if err != nil {
		logger.Fatal("Failed to open catalog feed", zap.Error(err))
	}
	defer func() { _ = f.Close() }()

	products, err := catalog.ParseFeed(f)
	if err != nil {
		logger.Fatal("Failed to parse catalog feed", zap.Error(err))
	}
	if len(products) == 0 {
		logger.Fatal("Catalog feed contains no products")
	}
	logger.Info("Parsed catalog feed", zap.Int("products", len(products)))

	engine, err := es.NewClient(es.Config{
		Addrs:          cfg.Engine.Addrs,
		Username:       cfg.Engine.Username,
		Password:       cfg.Engine.Password,
		RequestTimeout: time.Duration(cfg.Engine.RequestTimeout) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create engine client", zap.Error(err))
	}

	ctx := context.Background()
	if err := engine.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Engine not ready", zap.Error(err))
	}

	if err := engine.RecreateIndex(ctx, cfg.Engine.Index); err != nil {
		logger.Fatal("Failed to create index", zap.Error(err))
	}
	logger.Info("Created index", zap.String("index", cfg.Engine.Index))

	if err := engine.BulkIndex(ctx, cfg.Engine.Index, products); err != nil {
		logger.Fatal("Failed to index products", zap.Error(err))
	}

	if err := engine.Refresh(ctx, cfg.Engine.Index); err != nil {
		logger.Fatal("Failed to refresh index", zap.Error(err))
	}

	logger.Info("Catalog loaded",
		zap.Int("products", len(products)),
		zap.String("index", cfg.Engine.Index),
	)
}
