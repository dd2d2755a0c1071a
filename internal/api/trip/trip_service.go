package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/cache"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/enrich"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/filter"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/schedule"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/scoring"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const DefaultSearchTimeout = 15 * time.Second

var _ Service = (*ServiceImpl)(nil)

// Service resolves trip requests into itineraries.
type Service interface {
	ResolveTrip(ctx context.Context, freeText string) (*types.TripResponse, error)
	ApplyFilters(ctx context.Context, params types.TripParameters) (*types.TripResponse, error)
}

// Extractor turns free text into trip parameters.
type Extractor interface {
	Extract(ctx context.Context, freeText string) (types.TripParameters, error)
}

type ServiceImpl struct {
	extractor     Extractor
	directory     places.Directory
	normalizer    *places.Normalizer
	cache         *cache.ResultCache
	enricher      *enrich.Enricher
	scorer        *scoring.Engine
	filter        *filter.Engine
	scheduler     *schedule.Engine
	searchTimeout time.Duration
	logger        *slog.Logger
	metrics       *metrics.AppMetrics
}

// Pipeline groups the stages a ServiceImpl drives.
type Pipeline struct {
	Directory     places.Directory
	Normalizer    *places.Normalizer
	Cache         *cache.ResultCache
	Enricher      *enrich.Enricher
	Scorer        *scoring.Engine
	Filter        *filter.Engine
	Scheduler     *schedule.Engine
	SearchTimeout time.Duration
}

func NewServiceImpl(extractor Extractor, p Pipeline, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	if p.SearchTimeout <= 0 {
		p.SearchTimeout = DefaultSearchTimeout
	}
	return &ServiceImpl{
		extractor:     extractor,
		directory:     p.Directory,
		normalizer:    p.Normalizer,
		cache:         p.Cache,
		enricher:      p.Enricher,
		scorer:        p.Scorer,
		filter:        p.Filter,
		scheduler:     p.Scheduler,
		searchTimeout: p.SearchTimeout,
		logger:        logger,
		metrics:       m,
	}
}

func (s *ServiceImpl) ResolveTrip(ctx context.Context, freeText string) (*types.TripResponse, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ResolveTrip")
	defer span.End()

	if s.extractor == nil {
		err := &types.UpstreamError{Op: "extract", Err: errors.New("no language model configured")}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	params, err := s.extractor.Extract(ctx, freeText)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to extract trip parameters", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return nil, err
	}
	return s.ApplyFilters(ctx, params)
}

func (s *ServiceImpl) ApplyFilters(ctx context.Context, params types.TripParameters) (*types.TripResponse, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ApplyFilters", trace.WithAttributes(
		attribute.StringSlice("trip.locations", params.Locations),
		attribute.Int("trip.duration", params.Duration),
	))
	defer span.End()
	start := time.Now()

	if err := params.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}

	// Search, enrich and score each category
	sets, err := s.resolveCandidates(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to resolve candidate places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate resolution failed")
		return nil, err
	}

	// Narrow the candidates, then lay them out over the trip's days
	filtered := s.filter.Filter(ctx, sets, params)
	itinerary := s.scheduler.Schedule(ctx, filtered, params)

	s.metrics.RecordTripResolve(ctx, time.Since(start))
	s.logger.InfoContext(ctx, "Itinerary resolved",
		slog.Int("candidates", sets.Len()),
		slog.Int("filtered", len(filtered)),
		slog.Int("scheduled", len(itinerary)))
	span.SetAttributes(
		attribute.Int("trip.candidates", sets.Len()),
		attribute.Int("trip.scheduled", len(itinerary)),
	)
	span.SetStatus(codes.Ok, "")

	return &types.TripResponse{
		ID:     uuid.New(),
		Prompt: params,
		Places: itinerary,
	}, nil
}

type categoryResult struct {
	category types.Category
	places   []types.Place
	err      error
}

// resolveCandidates fetches the three categories concurrently. Each set is
// searched, normalized, enriched and scored before it is returned. A failed
// category is logged and left empty; the request fails only when nothing resolved.
func (s *ServiceImpl) resolveCandidates(ctx context.Context, params types.TripParameters) (types.CandidateSets, error) {
	var wg sync.WaitGroup
	resultCh := make(chan categoryResult, len(types.Categories))

	for _, category := range types.Categories {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ps, err := s.resolveCategory(ctx, category, params)
			resultCh <- categoryResult{category: category, places: ps, err: err}
		}()
	}
	// Wait for all categories, then close the channel
	wg.Wait()
	close(resultCh)

	var sets types.CandidateSets
	var errs []error
	for res := range resultCh {
		if res.err != nil {
			s.logger.WarnContext(ctx, "Candidate search failed, continuing without category",
				slog.String("category", string(res.category)),
				slog.Any("error", res.err))
			errs = append(errs, fmt.Errorf("%s: %w", res.category, res.err))
			continue
		}
		sets.Set(res.category, res.places)
	}

	// An empty but healthy search is not an error
	if sets.Len() == 0 && len(errs) > 0 {
		return sets, errors.Join(append([]error{types.ErrNoCandidates}, errs...)...)
	}
	return sets, nil
}

func (s *ServiceImpl) resolveCategory(ctx context.Context, category types.Category, params types.TripParameters) ([]types.Place, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ResolveCategory", trace.WithAttributes(
		attribute.String("places.category", string(category)),
	))
	defer span.End()

	query := places.SearchQuery(category, params)
	raw, err := cache.GetOrCompute(ctx, s.cache, cache.SearchKey(category, query), func(ctx context.Context) ([]places.RawPlace, error) {
		ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
		defer cancel()
		return s.directory.Search(ctx, query, category)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	// Cached raw results are normalized per request
	normalized := make([]types.Place, 0, len(raw))
	for _, r := range raw {
		normalized = append(normalized, s.normalizer.Normalize(category, r))
	}
	enriched := s.enricher.Enrich(ctx, normalized)
	scored := s.scorer.Score(enriched)

	span.SetAttributes(attribute.Int("places.count", len(scored)))
	span.SetStatus(codes.Ok, "")
	return scored, nil
}
