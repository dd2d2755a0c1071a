package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the pipeline's metric instruments.
// A nil *AppMetrics is valid and records nothing.
type AppMetrics struct {
	CacheLookupsTotal           metric.Int64Counter
	DetailFetchErrorsTotal      metric.Int64Counter
	UpstreamCallDurationSeconds metric.Float64Histogram
	ScheduleFallbacksTotal      metric.Int64Counter
	TripResolveDurationSeconds  metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.CacheLookupsTotal, err = meter.Int64Counter(
		"result_cache_lookups_total",
		metric.WithDescription("Result cache lookups by namespace and outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	m.DetailFetchErrorsTotal, err = meter.Int64Counter(
		"detail_fetch_errors_total",
		metric.WithDescription("Place detail fetches that failed and were degraded to base fields"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.UpstreamCallDurationSeconds, err = meter.Float64Histogram(
		"upstream_call_duration_seconds",
		metric.WithDescription("Duration of places directory and LLM calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.ScheduleFallbacksTotal, err = meter.Int64Counter(
		"schedule_fallbacks_total",
		metric.WithDescription("Itineraries produced by the deterministic fallback"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, err
	}

	m.TripResolveDurationSeconds, err = meter.Float64Histogram(
		"trip_resolve_duration_seconds",
		metric.WithDescription("End to end duration of trip resolution in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// InitAppMetrics initializes the global instruments ONLY ONCE from the global MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("TripItinerary"))
		if err != nil {
			log.Fatalf("Metrics: failed to create instruments: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

func (m *AppMetrics) RecordCacheLookup(ctx context.Context, namespace string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.CacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("namespace", namespace),
		attribute.String("outcome", outcome),
	))
}

func (m *AppMetrics) RecordDetailFetchError(ctx context.Context) {
	if m == nil {
		return
	}
	m.DetailFetchErrorsTotal.Add(ctx, 1)
}

func (m *AppMetrics) RecordUpstreamCall(ctx context.Context, op string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamCallDurationSeconds.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("op", op)))
}

func (m *AppMetrics) RecordScheduleFallback(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.ScheduleFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *AppMetrics) RecordTripResolve(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.TripResolveDurationSeconds.Record(ctx, d.Seconds())
}
