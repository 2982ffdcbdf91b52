package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/observability"
)

// SurveillanceTransformer implements Transformer: it parses a raw alert,
// applies the research cutoff, resolves countries and diseases and expands
// the record into one event per (country, disease) pair.
type SurveillanceTransformer struct {
	catalog   *domain.Catalog
	extractor domain.CountryExtractor
	cutoff    domain.Date
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewTransformer creates a SurveillanceTransformer. A nil extractor uses the
// catalog's country index directly; a missing cutoff keeps every record.
func NewTransformer(catalog *domain.Catalog, extractor domain.CountryExtractor, cutoff domain.Date, metrics *observability.Metrics, logger *slog.Logger) *SurveillanceTransformer {
	return &SurveillanceTransformer{
		catalog:   catalog,
		extractor: extractor,
		cutoff:    cutoff,
		metrics:   metrics,
		logger:    logger,
	}
}

// Transform returns the events of one raw message. A record outside the
// cutoff yields no events and no error.
func (t *SurveillanceTransformer) Transform(_ context.Context, raw domain.RawEvent) ([]domain.ResolvedEvent, error) {
	rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return nil, err
	}
	if len(domain.FilterByCutoff([]domain.SurveillanceRecord{rec}, t.cutoff)) == 0 {
		t.metrics.RecordsFiltered.Inc()
		t.logger.Debug("record outside research window",
			"date", rec.Date.String(),
			"headline", rec.Headline,
		)
		return nil, nil
	}
	return t.Resolve(rec), nil
}

// Resolve resolves and expands an already parsed record.
func (t *SurveillanceTransformer) Resolve(rec domain.SurveillanceRecord) []domain.ResolvedEvent {
	resolved := domain.ResolveRecord(rec, t.catalog, t.extractor)
	if len(resolved.Countries) == 0 {
		t.metrics.UnresolvedFields.WithLabelValues("country").Inc()
		t.logger.Debug("no country resolved", "headline", rec.Headline)
	}
	if len(resolved.Diseases) == 0 {
		t.metrics.UnresolvedFields.WithLabelValues("disease").Inc()
		t.logger.Debug("no disease resolved", "headline", rec.Headline)
	}
	return domain.Expand(resolved, t.catalog)
}
