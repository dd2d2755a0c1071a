package generativeAI

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/schedule"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ schedule.Oracle = (*ItineraryOracle)(nil)

// ItineraryOracle asks an LLM to assign day and time to filtered places.
type ItineraryOracle struct {
	generator ContentGenerator
	logger    *slog.Logger
}

func NewItineraryOracle(generator ContentGenerator, logger *slog.Logger) *ItineraryOracle {
	return &ItineraryOracle{generator: generator, logger: logger}
}

type oracleCandidate struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Hours     string   `json:"opening_hours"`
	Score     *float64 `json:"score,omitempty"`
}

type oracleSlot struct {
	ID   string     `json:"id"`
	Day  flexNumber `json:"day"`
	Time string     `json:"time"`
}

func (o *ItineraryOracle) Suggest(ctx context.Context, places []types.Place, params types.TripParameters) ([]types.ScheduledPlace, error) {
	ctx, span := otel.Tracer("ItineraryOracle").Start(ctx, "Suggest", trace.WithAttributes(
		attribute.Int("places.count", len(places)),
	))
	defer span.End()

	prompt, err := buildItineraryPrompt(places, params)
	if err != nil {
		return nil, err
	}
	answer, err := o.generator.GenerateContent(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "oracle call failed")
		return nil, err
	}

	var slots []oracleSlot
	if err := json.Unmarshal([]byte(cleanJSONResponse(answer)), &slots); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparsable oracle answer")
		return nil, fmt.Errorf("parse itinerary answer: %w", err)
	}

	out := make([]types.ScheduledPlace, 0, len(slots))
	for _, s := range slots {
		clock, err := types.ParseClock(s.Time)
		if err != nil {
			o.logger.DebugContext(ctx, "Skipping oracle slot with bad time",
				slog.String("place_id", s.ID), slog.String("time", s.Time))
			continue
		}
		out = append(out, types.ScheduledPlace{
			Place: types.Place{ID: s.ID},
			Day:   int(s.Day),
			Time:  clock,
		})
	}
	span.SetAttributes(attribute.Int("oracle.slots", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func buildItineraryPrompt(places []types.Place, params types.TripParameters) (string, error) {
	candidates := make([]oracleCandidate, len(places))
	for i, p := range places {
		candidates[i] = oracleCandidate{
			ID:        p.ID,
			Name:      p.Name,
			Category:  string(p.Category),
			Latitude:  p.Location.Lat,
			Longitude: p.Location.Lon,
			Hours:     p.Hours,
			Score:     p.Score,
		}
	}
	b, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}
	window := params.Timings
	if window.IsZero() {
		window = schedule.DefaultWindow
	}
	return fmt.Sprintf(itineraryPrompt,
		params.Duration,
		strings.Join(params.Locations, ", "),
		params.PartySize,
		strings.ToLower(string(params.ModeOfTransport)),
		params.Budget,
		window.Start, window.End,
		string(b),
		params.Duration,
	), nil
}
