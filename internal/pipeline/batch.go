package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/epi-surveillance-etl/internal/adapter/feed"
	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/observability"
)

// DefaultVisitorTopN is the number of residences kept per visitor ranking.
const DefaultVisitorTopN = 15

// BatchInputs locates the input files of a batch run. Empty optional paths
// skip the corresponding step.
type BatchInputs struct {
	AlertHistoryPath string
	AlertCurrentPath string
	EpidemicPath     string // optional
	PressPath        string // optional
	VisitorPath      string // optional
}

// BatchOutputs locates the output files. Each path's extension selects CSV
// or xlsx. Press and visitor outputs are written only when their input is set.
type BatchOutputs struct {
	EventsPath     string
	TimelinessPath string
	PressPath      string
	VisitorPath    string
}

// BatchSummary reports the size of each stage of a run.
type BatchSummary struct {
	Alerts          int
	Filtered        int
	Records         int
	Events          int
	TimelinessYears int
	PressReleases   int
	VisitorRankings int
}

// Batch runs the file-driven pipeline: load alerts, merge epidemic source
// dates, apply the cutoff, resolve and expand, then build the timeliness
// report and the optional press and visitor tables.
type Batch struct {
	transformer *SurveillanceTransformer
	cutoff      domain.Date
	visitorISO3 map[string]string
	topN        int
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewBatch creates a batch runner. visitorISO3 maps visitor-table labels to
// codes.
func NewBatch(t *SurveillanceTransformer, cutoff domain.Date, visitorISO3 map[string]string, topN int, metrics *observability.Metrics, logger *slog.Logger) *Batch {
	if topN <= 0 {
		topN = DefaultVisitorTopN
	}
	return &Batch{
		transformer: t,
		cutoff:      cutoff,
		visitorISO3: visitorISO3,
		topN:        topN,
		metrics:     metrics,
		logger:      logger,
	}
}

// Run executes every stage in order and writes the outputs. The context is
// checked between stages.
func (b *Batch) Run(ctx context.Context, in BatchInputs, out BatchOutputs) (BatchSummary, error) {
	var sum BatchSummary
	start := time.Now()
	b.metrics.PipelineRunning.Set(1)
	defer b.metrics.PipelineRunning.Set(0)

	records, err := b.loadRecords(in, &sum)
	if err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	var events []domain.ResolvedEvent
	for _, rec := range records {
		events = append(events, b.transformer.Resolve(rec)...)
	}
	sum.Events = len(events)
	b.metrics.EventsProduced.Add(float64(len(events)))
	if err := feed.WriteEvents(out.EventsPath, events); err != nil {
		return sum, fmt.Errorf("write events: %w", err)
	}
	b.logger.Info("events written", "path", out.EventsPath, "events", len(events))

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	years := domain.AggregateTimelinessByYear(domain.BuildTimeliness(records))
	sum.TimelinessYears = len(years)
	if err := feed.WriteTimeliness(out.TimelinessPath, years); err != nil {
		return sum, fmt.Errorf("write timeliness: %w", err)
	}
	b.logger.Info("timeliness written", "path", out.TimelinessPath, "years", len(years))

	if in.PressPath != "" {
		n, err := b.runPress(in.PressPath, out.PressPath)
		if err != nil {
			return sum, err
		}
		sum.PressReleases = n
	}
	if in.VisitorPath != "" {
		n, err := b.runVisitors(in.VisitorPath, out.VisitorPath)
		if err != nil {
			return sum, err
		}
		sum.VisitorRankings = n
	}

	b.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	b.logger.Info("batch run complete",
		"alerts", sum.Alerts,
		"filtered", sum.Filtered,
		"events", sum.Events,
		"duration", time.Since(start),
	)
	return sum, nil
}

// loadRecords reads the alert feeds, applies the cutoff and merges the
// epidemic-source dates.
func (b *Batch) loadRecords(in BatchInputs, sum *BatchSummary) ([]domain.SurveillanceRecord, error) {
	alerts, err := feed.ReadAlerts(in.AlertHistoryPath, in.AlertCurrentPath)
	if err != nil {
		return nil, fmt.Errorf("read alerts: %w", err)
	}
	sum.Alerts = len(alerts)
	b.metrics.RecordsConsumed.Add(float64(len(alerts)))
	b.metrics.BatchSize.Observe(float64(len(alerts)))

	records := make([]domain.SurveillanceRecord, 0, len(alerts))
	for _, a := range alerts {
		records = append(records, domain.RecordFromAlert(a))
	}

	kept := domain.FilterByCutoff(records, b.cutoff)
	sum.Filtered = len(records) - len(kept)
	b.metrics.RecordsFiltered.Add(float64(sum.Filtered))

	if in.EpidemicPath != "" {
		sources, err := feed.ReadEpidemicSources(in.EpidemicPath)
		if err != nil {
			return nil, fmt.Errorf("read epidemic sources: %w", err)
		}
		kept = domain.MergeSourceTimes(kept, sources)
		b.logger.Info("epidemic sources merged", "sources", len(sources), "records", len(kept))
	}
	sum.Records = len(kept)
	return kept, nil
}

func (b *Batch) runPress(inPath, outPath string) (int, error) {
	items, err := feed.ReadPressReleases(inPath)
	if err != nil {
		return 0, fmt.Errorf("read press releases: %w", err)
	}
	cleaned := domain.CleanPressReleases(items, b.cutoff)
	if outPath != "" {
		if err := feed.WritePressReleases(outPath, cleaned); err != nil {
			return 0, fmt.Errorf("write press releases: %w", err)
		}
	}
	b.logger.Info("press releases cleaned", "read", len(items), "kept", len(cleaned))
	return len(cleaned), nil
}

func (b *Batch) runVisitors(inPath, outPath string) (int, error) {
	rows, err := feed.ReadVisitorCounts(inPath)
	if err != nil {
		return 0, fmt.Errorf("read visitor counts: %w", err)
	}
	rankings := domain.TopVisitorCountriesByYear(rows, b.topN, b.visitorISO3)
	rankings = append(rankings, domain.TopVisitorCountriesAllYears(rows, b.topN, b.visitorISO3))
	if outPath != "" {
		if err := feed.WriteVisitorRankings(outPath, rankings); err != nil {
			return 0, fmt.Errorf("write visitor rankings: %w", err)
		}
	}
	b.logger.Info("visitor rankings built", "cells", len(rows), "rankings", len(rankings))
	return len(rankings), nil
}
