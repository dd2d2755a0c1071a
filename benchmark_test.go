package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/filter"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/schedule"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/scoring"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func benchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func syntheticSets(n int) types.CandidateSets {
	var sets types.CandidateSets
	for _, c := range types.Categories {
		ps := make([]types.Place, n)
		for i := range ps {
			ps[i] = types.Place{
				ID:             fmt.Sprintf("%s-%d", c, i),
				Category:       c,
				Location:       types.Coordinates{Lat: 38.70 + float64(i)*0.001, Lon: -9.14 + float64(i)*0.001},
				BusinessStatus: types.StatusOperational,
				Rating:         3 + float64(i%20)/10,
				Popularity:     10 * (i + 1),
				Hours:          "9:00 AM - 6:00 PM",
			}
		}
		sets.Set(c, scoring.NewEngine().Score(ps))
	}
	return sets
}

func benchParams(duration int) types.TripParameters {
	return types.TripParameters{
		Locations: []string{"Lisbon"}, Duration: duration, ModeOfTransport: types.ModeTransit,
		Budget: types.BudgetMedium, Timings: types.DefaultTimings, RadiusKm: 20, PartySize: 2,
	}
}

func BenchmarkFilter(b *testing.B) {
	engine := filter.NewEngine(benchLogger())
	sets := syntheticSets(60)
	params := benchParams(3)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Filter(ctx, sets, params)
	}
}

func BenchmarkFallbackSchedule(b *testing.B) {
	sets := syntheticSets(60)
	var union []types.Place
	for _, c := range types.Categories {
		union = append(union, sets.Get(c)...)
	}
	params := benchParams(5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = schedule.Fallback(union, params)
	}
}

// BenchmarkApplyFiltersCached measures the HTTP path once every upstream answer is cached.
func BenchmarkApplyFiltersCached(b *testing.B) {
	google := httptest.NewServer((&fakePlaces{}).handler())
	defer google.Close()
	h := newTestStack(google.URL, benchLogger())

	payload, err := json.Marshal(benchParams(2))
	if err != nil {
		b.Fatal(err)
	}
	serve := func() int {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/trips/filter", bytes.NewReader(payload)))
		return rr.Code
	}
	if code := serve(); code != http.StatusOK {
		b.Fatalf("warm-up request returned %d", code)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if code := serve(); code != http.StatusOK {
			b.Fatalf("unexpected status %d", code)
		}
	}
}
