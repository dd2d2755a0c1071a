package enrich

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/cache"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	DefaultConcurrency = 20
	DefaultTimeout     = 10 * time.Second
)

// Enricher fills in detail fields. At most Config.Concurrency fetches are in
// flight across all concurrent Enrich calls.
type Enricher struct {
	directory  places.Directory
	normalizer *places.Normalizer
	cache      *cache.ResultCache
	slots      *semaphore.Weighted
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.AppMetrics
}

type Config struct {
	Concurrency int
	Timeout     time.Duration
}

func NewEnricher(directory places.Directory, normalizer *places.Normalizer, rc *cache.ResultCache,
	cfg Config, m *metrics.AppMetrics, logger *slog.Logger) *Enricher {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Enricher{
		directory:  directory,
		normalizer: normalizer,
		cache:      rc,
		slots:      semaphore.NewWeighted(int64(cfg.Concurrency)),
		timeout:    cfg.Timeout,
		logger:     logger,
		metrics:    m,
	}
}

// Enrich returns the places with detail fields merged in, in input order.
// A failed fetch leaves that place with its base fields; it is logged and never returned.
func (e *Enricher) Enrich(ctx context.Context, in []types.Place) []types.Place {
	ctx, span := otel.Tracer("DetailEnricher").Start(ctx, "Enrich", trace.WithAttributes(
		attribute.Int("places.count", len(in)),
	))
	defer span.End()

	out := make([]types.Place, len(in))
	copy(out, in)

	var g errgroup.Group
	failed := make([]bool, len(in))

	for i, p := range in {
		if p.DetailsFetched || p.ID == "" {
			continue
		}
		g.Go(func() error {
			if err := e.slots.Acquire(ctx, 1); err != nil {
				failed[i] = true
				return nil
			}
			defer e.slots.Release(1)

			enriched, err := e.enrichOne(ctx, p)
			if err != nil {
				failed[i] = true
				e.metrics.RecordDetailFetchError(ctx)
				e.logger.WarnContext(ctx, "Detail fetch failed, keeping base fields",
					slog.String("place_id", p.ID),
					slog.String("category", string(p.Category)),
					slog.Any("error", err))
				return nil
			}
			out[i] = enriched
			return nil
		})
	}
	_ = g.Wait()

	var failures int
	for _, f := range failed {
		if f {
			failures++
		}
	}
	span.SetAttributes(attribute.Int("places.detail_failures", failures))
	if failures > 0 {
		span.SetStatus(codes.Error, "some detail fetches failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return out
}

func (e *Enricher) enrichOne(ctx context.Context, base types.Place) (types.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	detailed, err := cache.GetOrCompute(ctx, e.cache, cache.DetailKey(base.ID), func(ctx context.Context) (types.Place, error) {
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		raw, err := e.directory.Detail(ctx, base.ID)
		if err != nil {
			return types.Place{}, err
		}
		return Merge(base, e.normalizer.Normalize(base.Category, *raw)), nil
	})
	if err != nil {
		return types.Place{}, err
	}
	merged := Merge(base, detailed)
	merged.DetailsFetched = true
	return merged, nil
}

// Merge fills base's absent or defaulted fields from detail. Fields base already has win.
func Merge(base, detail types.Place) types.Place {
	m := base

	if m.Name == "" {
		m.Name = detail.Name
	}
	if !base.HasLocation() && detail.HasLocation() {
		m.Location = detail.Location
		m.Imputed &^= types.FieldLocation
	}
	if base.Imputed.Has(types.FieldStatus) && !detail.Imputed.Has(types.FieldStatus) {
		m.BusinessStatus = detail.BusinessStatus
		m.Imputed &^= types.FieldStatus
	}
	if base.Imputed.Has(types.FieldRating) && !detail.Imputed.Has(types.FieldRating) {
		m.Rating = detail.Rating
		m.Imputed &^= types.FieldRating
	}
	if base.Imputed.Has(types.FieldPopularity) && !detail.Imputed.Has(types.FieldPopularity) {
		m.Popularity = detail.Popularity
		m.Imputed &^= types.FieldPopularity
	}
	if base.Imputed.Has(types.FieldPriceTier) && !detail.Imputed.Has(types.FieldPriceTier) {
		m.PriceTier = detail.PriceTier
		m.Imputed &^= types.FieldPriceTier
	}
	if base.Imputed.Has(types.FieldHours) && !detail.Imputed.Has(types.FieldHours) {
		m.Hours = detail.Hours
		m.Imputed &^= types.FieldHours
	}
	if len(m.Servings) == 0 && len(detail.Servings) > 0 {
		m.Servings = append([]types.Serving(nil), detail.Servings...)
	}
	if m.Description == "" {
		m.Description = detail.Description
	}
	if m.Address == "" {
		m.Address = detail.Address
	}
	if m.Icon == "" {
		m.Icon = detail.Icon
	}
	return m
}
