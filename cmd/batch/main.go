// Command batch runs the file-driven surveillance pipeline once: it reads the
// alert exports, merges epidemic-intelligence source dates, resolves and
// expands every bulletin, and writes the events and timeliness tables. Press
// releases and visitor arrivals are processed when their inputs are given.
//
// Reference inputs and the research end date come from the environment (see
// internal/config); flags select the run's inputs and outputs.
//
// Usage:
//
//	go run ./cmd/batch \
//	  -history data/TCDCTravelAlert_history.csv \
//	  -current data/TCDCTravelAlert.csv \
//	  -epidemic data/epidemic_intelligence.xlsx \
//	  -out-dir output
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/couchcryptid/epi-surveillance-etl/internal/cache"
	"github.com/couchcryptid/epi-surveillance-etl/internal/config"
	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/observability"
	"github.com/couchcryptid/epi-surveillance-etl/internal/pipeline"
	"github.com/couchcryptid/epi-surveillance-etl/internal/reference"
)

func main() {
	history := flag.String("history", "", "history alert export (CSV)")
	current := flag.String("current", "", "current alert export (CSV)")
	epidemic := flag.String("epidemic", "", "epidemic-intelligence workbook (optional)")
	press := flag.String("press", "", "press-release workbook (optional)")
	visitors := flag.String("visitors", "", "visitor-arrivals workbook (optional)")
	outDir := flag.String("out-dir", "output", "directory for output tables")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	topN := flag.Int("top", pipeline.DefaultVisitorTopN, "residences kept per visitor ranking")
	endDate := flag.String("end-date", "", "research end date (YYYY-MM-DD), overrides RESEARCH_END_DATE")
	flag.Parse()

	if *history == "" || *current == "" || (*format != "csv" && *format != "xlsx") {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *endDate != "" {
		t, err := time.Parse(time.DateOnly, *endDate)
		if err != nil {
			slog.Error("invalid -end-date", "value", *endDate, "error", err)
			os.Exit(2)
		}
		cfg.ResearchEndDate = t
	}

	logger := observability.NewLogger(cfg)
	if err := run(cfg, logger, pipeline.BatchInputs{
		AlertHistoryPath: *history,
		AlertCurrentPath: *current,
		EpidemicPath:     *epidemic,
		PressPath:        *press,
		VisitorPath:      *visitors,
	}, outputs(*outDir, *format), *topN); err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}
}

func outputs(dir, ext string) pipeline.BatchOutputs {
	name := func(base string) string { return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)) }
	return pipeline.BatchOutputs{
		EventsPath:     name("surveillance_events"),
		TimelinessPath: name("timeliness_by_year"),
		PressPath:      name("press_releases"),
		VisitorPath:    name("visitor_rankings"),
	}
}

func run(cfg *config.Config, logger *slog.Logger, in pipeline.BatchInputs, out pipeline.BatchOutputs, topN int) error {
	metrics := observability.NewMetrics()

	ref, err := reference.Load(reference.Options{
		CountryPath:    cfg.CountryReferencePath,
		CountrySheet:   cfg.CountrySheet,
		RegionSheet:    cfg.RegionSheet,
		RoutePath:      cfg.TransmissionRoutePath,
		DictionaryPath: cfg.DictionaryPath,
	}, logger)
	if err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}

	cutoff := domain.DateOf(cfg.ResearchEndDate)
	extractor := cache.NewCountryExtractor(ref.Catalog.Countries, cfg.CountryCacheSize, metrics)
	transformer := pipeline.NewTransformer(ref.Catalog, extractor, cutoff, metrics, logger)
	b := pipeline.NewBatch(transformer, cutoff, ref.Dictionaries.VisitorISO3, topN, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum, err := b.Run(ctx, in, out)
	if err != nil {
		return err
	}
	logger.Info("outputs written",
		"dir", filepath.Dir(out.EventsPath),
		"records", sum.Records,
		"events", sum.Events,
		"years", sum.TimelinessYears,
		"cache_entries", extractor.Len(),
	)
	return nil
}
