package filter

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

var tripWindow = types.TimeWindow{Start: 9 * 60, End: 17 * 60}

func params() types.TripParameters {
	return types.TripParameters{
		Locations: []string{"San Diego"},
		Duration:  1,
		Timings:   tripWindow,
		RadiusKm:  10,
	}
}

func newEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mk(id string, cat types.Category, lat, lon float64) types.Place {
	return types.Place{
		ID:             id,
		Category:       cat,
		Location:       types.Coordinates{Lat: lat, Lon: lon},
		BusinessStatus: types.StatusOperational,
		Hours:          "9:00 AM - 5:00 PM",
		Score:          score(0.8),
	}
}

func TestFilter_DistanceStage(t *testing.T) {
	sets := types.CandidateSets{
		Transit: []types.Place{
			mk("t1", types.CategoryTransit, 32.70, -117.16),
			mk("t-far", types.CategoryTransit, 33.50, -117.16),
		},
		Restaurants: []types.Place{
			mk("near", types.CategoryRestaurant, 33.10, -117.16),
			mk("far", types.CategoryRestaurant, 34.50, -117.16),
		},
	}
	got := newEngine().Filter(context.Background(), sets, params())

	ids := idsOf(got)
	assert.Equal(t, []string{"near", "t1", "t-far"}, ids, "transit kept unconditionally, union order restaurant, transit, tourist")
}

func TestFilter_NoTransitSkipsDistance(t *testing.T) {
	sets := types.CandidateSets{
		Restaurants: []types.Place{mk("r", types.CategoryRestaurant, 10, 10)},
		Tourist:     []types.Place{mk("t", types.CategoryTourist, -40, 100)},
	}
	got := newEngine().Filter(context.Background(), sets, params())
	assert.Equal(t, []string{"r", "t"}, idsOf(got))
}

func TestFilter_DropsPlaceWithoutCoordinates(t *testing.T) {
	noLoc := mk("noloc", types.CategoryTourist, 0, 0)
	noLoc.Imputed |= types.FieldLocation
	sets := types.CandidateSets{
		Transit: []types.Place{mk("t1", types.CategoryTransit, 32.7, -117.16)},
		Tourist: []types.Place{noLoc},
	}
	got := newEngine().Filter(context.Background(), sets, params())
	assert.Equal(t, []string{"t1"}, idsOf(got))
}

func TestFilter_TimeStage(t *testing.T) {
	evening := mk("evening", types.CategoryTourist, 0, 0)
	evening.Hours = "6:00 PM - 10:00 PM"
	edge := mk("edge", types.CategoryTourist, 0, 0)
	edge.Hours = "5:00 PM - 11:00 PM"
	broken := mk("broken", types.CategoryTourist, 0, 0)
	broken.Hours = "ask at the door"
	allDay := mk("all-day", types.CategoryTourist, 0, 0)
	allDay.Hours = "Open 24 hours"

	sets := types.CandidateSets{Tourist: []types.Place{evening, edge, broken, allDay}}
	got := newEngine().Filter(context.Background(), sets, params())
	assert.Equal(t, []string{"edge", "all-day"}, idsOf(got))
}

func TestFilter_ScoreAndStatusStages(t *testing.T) {
	low := mk("low", types.CategoryTourist, 0, 0)
	low.Score = score(0.29)
	boundary := mk("boundary", types.CategoryTourist, 0, 0)
	boundary.Score = score(0.3)
	unscored := mk("unscored", types.CategoryTourist, 0, 0)
	unscored.Score = nil
	closed := mk("closed", types.CategoryTourist, 0, 0)
	closed.BusinessStatus = "CLOSED_PERMANENTLY"
	lower := mk("lower", types.CategoryTourist, 0, 0)
	lower.BusinessStatus = "operational"

	sets := types.CandidateSets{Tourist: []types.Place{low, boundary, unscored, closed, lower}}
	got := newEngine().Filter(context.Background(), sets, params())
	assert.Equal(t, []string{"boundary", "unscored", "lower"}, idsOf(got))
}

func TestFilter_Idempotent(t *testing.T) {
	sets := types.CandidateSets{
		Transit:     []types.Place{mk("t1", types.CategoryTransit, 32.70, -117.16)},
		Restaurants: []types.Place{mk("r1", types.CategoryRestaurant, 32.71, -117.15)},
		Tourist:     []types.Place{mk("a1", types.CategoryTourist, 32.72, -117.17)},
	}
	e := newEngine()
	once := e.Filter(context.Background(), sets, params())
	require.Len(t, once, 3)

	again := e.Filter(context.Background(), regroup(once), params())
	assert.Equal(t, once, again)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	sets := types.CandidateSets{Tourist: []types.Place{mk("a", types.CategoryTourist, 0, 0), {ID: "b", Hours: "x"}}}
	before := append([]types.Place(nil), sets.Tourist...)
	_ = newEngine().Filter(context.Background(), sets, params())
	assert.Equal(t, before, sets.Tourist)
}

func regroup(ps []types.Place) types.CandidateSets {
	var sets types.CandidateSets
	for _, c := range types.Categories {
		var group []types.Place
		for _, p := range ps {
			if p.Category == c {
				group = append(group, p)
			}
		}
		sets.Set(c, group)
	}
	return sets
}

func idsOf(ps []types.Place) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
