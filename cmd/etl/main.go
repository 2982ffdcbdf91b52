// Command etl runs the streaming surveillance pipeline: it consumes raw
// travel-alert JSON from Kafka, resolves countries and diseases against the
// reference catalog, and produces one message per (country, disease) event.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/epi-surveillance-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/epi-surveillance-etl/internal/adapter/kafka"
	"github.com/couchcryptid/epi-surveillance-etl/internal/cache"
	"github.com/couchcryptid/epi-surveillance-etl/internal/config"
	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/observability"
	"github.com/couchcryptid/epi-surveillance-etl/internal/pipeline"
	"github.com/couchcryptid/epi-surveillance-etl/internal/reference"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ref, err := reference.Load(reference.Options{
		CountryPath:    cfg.CountryReferencePath,
		CountrySheet:   cfg.CountrySheet,
		RegionSheet:    cfg.RegionSheet,
		RoutePath:      cfg.TransmissionRoutePath,
		DictionaryPath: cfg.DictionaryPath,
	}, logger)
	if err != nil {
		logger.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}

	extractor := cache.NewCountryExtractor(ref.Catalog.Countries, cfg.CountryCacheSize, metrics)
	cutoff := domain.DateOf(cfg.ResearchEndDate)
	logger.Info("country extraction cache enabled", "cache_size", cfg.CountryCacheSize)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(ref.Catalog, extractor, cutoff, metrics, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, logger, p)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
