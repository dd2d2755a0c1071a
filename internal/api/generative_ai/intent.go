package generativeAI

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// IntentExtractor turns a free-text request into validated TripParameters.
type IntentExtractor struct {
	generator ContentGenerator
	logger    *slog.Logger
}

func NewIntentExtractor(generator ContentGenerator, logger *slog.Logger) *IntentExtractor {
	return &IntentExtractor{generator: generator, logger: logger}
}

type validationResult struct {
	PlanIsValid flexString `json:"plan_is_valid"`
}

type extractedParams struct {
	Location        flexString `json:"location"`
	Origin          flexString `json:"origin"`
	Duration        flexNumber `json:"duration"`
	PartySize       flexNumber `json:"no_of_people"`
	Budget          flexString `json:"budget"`
	ModeOfTransport flexString `json:"mode_of_transport"`
	TripType        flexString `json:"type_of_trip"`
	Cuisine         flexString `json:"cuisine"`
	Attraction      flexString `json:"attraction"`
	Attractions     flexString `json:"attractions"`
	Timings         flexString `json:"timings"`
	Distance        flexNumber `json:"distance"`
}

// Extract runs the plausibility check, then parameter extraction, then defaults and validation.
func (x *IntentExtractor) Extract(ctx context.Context, freeText string) (types.TripParameters, error) {
	ctx, span := otel.Tracer("IntentExtractor").Start(ctx, "Extract")
	defer span.End()

	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return types.TripParameters{}, &types.InputError{Field: "prompt", Reason: "must not be empty"}
	}

	answer, err := x.generator.GenerateContent(ctx, fmt.Sprintf(validationPrompt, freeText))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation call failed")
		return types.TripParameters{}, &types.UpstreamError{Op: "intent.validate", Err: err}
	}
	var verdict validationResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(answer)), &verdict); err != nil {
		span.RecordError(err)
		return types.TripParameters{}, &types.UpstreamError{Op: "intent.validate", Err: fmt.Errorf("unparsable answer: %w", err)}
	}
	if !isAffirmative(string(verdict.PlanIsValid)) {
		x.logger.InfoContext(ctx, "Trip request rejected as unreasonable")
		span.SetStatus(codes.Error, "unreasonable request")
		return types.TripParameters{}, types.ErrInvalidRequest
	}

	answer, err = x.generator.GenerateContent(ctx, fmt.Sprintf(extractionPrompt, freeText))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction call failed")
		return types.TripParameters{}, &types.UpstreamError{Op: "intent.extract", Err: err}
	}
	var raw extractedParams
	if err := json.Unmarshal([]byte(cleanJSONResponse(answer)), &raw); err != nil {
		span.RecordError(err)
		return types.TripParameters{}, &types.UpstreamError{Op: "intent.extract", Err: fmt.Errorf("unparsable answer: %w", err)}
	}

	params, err := raw.toParameters()
	if err != nil {
		return types.TripParameters{}, err
	}
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return types.TripParameters{}, err
	}

	x.logger.DebugContext(ctx, "Trip parameters extracted",
		slog.Any("locations", params.Locations),
		slog.Int("duration", params.Duration),
		slog.String("mode", string(params.ModeOfTransport)))
	span.SetStatus(codes.Ok, "")
	return params, nil
}

func (r extractedParams) toParameters() (types.TripParameters, error) {
	p := types.TripParameters{
		Locations:  splitList(string(r.Location)),
		Origin:     strings.TrimSpace(string(r.Origin)),
		Duration:   int(r.Duration),
		PartySize:  int(r.PartySize),
		RadiusKm:   float64(r.Distance),
		TripType:   strings.TrimSpace(string(r.TripType)),
		Cuisine:    strings.TrimSpace(string(r.Cuisine)),
		Attraction: strings.TrimSpace(string(r.Attraction)),
	}
	if p.Attraction == "" {
		p.Attraction = strings.TrimSpace(string(r.Attractions))
	}
	if b := strings.TrimSpace(string(r.Budget)); b != "" {
		if parsed, ok := types.ParseBudget(b); ok {
			p.Budget = parsed
		}
	}
	if m := strings.TrimSpace(string(r.ModeOfTransport)); m != "" {
		if parsed, ok := types.ParseTransportMode(m); ok {
			p.ModeOfTransport = parsed
		}
	}
	if t := strings.TrimSpace(string(r.Timings)); t != "" {
		w, err := types.ParseTimeWindow(t)
		if err != nil {
			return types.TripParameters{}, &types.InputError{Field: "timings", Reason: err.Error()}
		}
		p.Timings = w
	}
	return p, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "1", "true", "valid":
		return true
	}
	return false
}

// flexString accepts a JSON string, number, bool or list of strings.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = flexString(strings.Join(list, ", "))
		return nil
	}
	*f = flexString(strings.Trim(string(b), `"`))
	return nil
}

// flexNumber accepts a JSON number or a string holding a number.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexNumber(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	fields := strings.Fields(s)
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil
	}
	*f = flexNumber(n)
	return nil
}
