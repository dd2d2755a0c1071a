package filter

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/geo"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// MinScore is the lowest score a scored place may have and survive.
const MinScore = 0.3

// Engine prunes the union of the candidate sets.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Filter runs the distance, time, score and status stages in that order.
// The input sets are not modified.
func (e *Engine) Filter(ctx context.Context, sets types.CandidateSets, params types.TripParameters) []types.Place {
	union := make([]types.Place, 0, sets.Len())
	for _, c := range types.Categories {
		union = append(union, sets.Get(c)...)
	}

	out := e.byDistance(ctx, union, sets.Transit, params.RadiusKm)
	out = e.byTime(ctx, out, params.Timings)
	out = byScore(out)
	out = byStatus(out)
	return out
}

func (e *Engine) byDistance(ctx context.Context, in, transit []types.Place, radiusKm float64) []types.Place {
	points := make([]types.Coordinates, 0, len(transit))
	for _, t := range transit {
		if t.HasLocation() {
			points = append(points, t.Location)
		}
	}
	center, err := geo.Centroid(points)
	if err != nil {
		e.logger.DebugContext(ctx, "No transit locations, skipping distance stage")
		return in
	}

	out := make([]types.Place, 0, len(in))
	for _, p := range in {
		if p.Category == types.CategoryTransit {
			out = append(out, p)
			continue
		}
		if !p.HasLocation() {
			e.logger.WarnContext(ctx, "Dropping place without coordinates", slog.String("place_id", p.ID))
			continue
		}
		if geo.Distance(p.Location, center) <= radiusKm {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) byTime(ctx context.Context, in []types.Place, window types.TimeWindow) []types.Place {
	out := make([]types.Place, 0, len(in))
	for _, p := range in {
		hours, err := places.ParseHours(p.Hours)
		if err != nil {
			e.logger.WarnContext(ctx, "Dropping place with unusable hours",
				slog.String("place_id", p.ID),
				slog.String("hours", p.Hours),
				slog.Any("error", &types.DataError{PlaceID: p.ID, Reason: err.Error()}))
			continue
		}
		if window.Overlaps(hours) {
			out = append(out, p)
		}
	}
	return out
}

func byScore(in []types.Place) []types.Place {
	out := make([]types.Place, 0, len(in))
	for _, p := range in {
		if p.Score == nil || *p.Score >= MinScore {
			out = append(out, p)
		}
	}
	return out
}

func byStatus(in []types.Place) []types.Place {
	out := make([]types.Place, 0, len(in))
	for _, p := range in {
		if p.IsOperational() {
			out = append(out, p)
		}
	}
	return out
}
