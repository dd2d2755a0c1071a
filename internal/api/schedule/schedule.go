package schedule

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// minOracleItems is the smallest oracle answer that is not treated as degenerate.
const minOracleItems = 4

const DefaultOracleTimeout = 30 * time.Second

// DefaultWindow is used when the trip has no daily window.
var DefaultWindow = types.TimeWindow{Start: 8 * 60, End: 20 * 60}

// Oracle proposes a day and time for each place. Its answer is advisory.
type Oracle interface {
	Suggest(ctx context.Context, places []types.Place, params types.TripParameters) ([]types.ScheduledPlace, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(ctx context.Context, places []types.Place, params types.TripParameters) ([]types.ScheduledPlace, error)

func (f OracleFunc) Suggest(ctx context.Context, places []types.Place, params types.TripParameters) ([]types.ScheduledPlace, error) {
	return f(ctx, places, params)
}

// Engine orders filtered places into an itinerary.
type Engine struct {
	oracle  Oracle
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

// NewEngine accepts a nil oracle, in which case only the fallback is used.
func NewEngine(oracle Oracle, timeout time.Duration, m *metrics.AppMetrics, logger *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	return &Engine{oracle: oracle, timeout: timeout, logger: logger, metrics: m}
}

// Schedule prefers the oracle and falls back to Fallback when the oracle is
// absent, fails, times out or returns three or fewer usable items.
func (e *Engine) Schedule(ctx context.Context, places []types.Place, params types.TripParameters) []types.ScheduledPlace {
	ctx, span := otel.Tracer("ScheduleEngine").Start(ctx, "Schedule", trace.WithAttributes(
		attribute.Int("places.count", len(places)),
		attribute.Int("trip.duration", params.Duration),
	))
	defer span.End()

	if len(places) == 0 {
		return []types.ScheduledPlace{}
	}

	reason := "no_oracle"
	if e.oracle != nil {
		suggested, err := e.suggest(ctx, places, params)
		switch {
		case err != nil:
			reason = "error"
			span.RecordError(err)
			e.logger.WarnContext(ctx, "Itinerary oracle failed, using fallback", slog.Any("error", err))
		case len(suggested) < minOracleItems:
			reason = "degenerate"
			e.logger.WarnContext(ctx, "Itinerary oracle answer is degenerate, using fallback",
				slog.Int("usable_items", len(suggested)))
		default:
			span.SetAttributes(attribute.String("schedule.source", "oracle"))
			span.SetStatus(codes.Ok, "")
			return suggested
		}
	}

	e.metrics.RecordScheduleFallback(ctx, reason)
	span.SetAttributes(attribute.String("schedule.source", "fallback"), attribute.String("schedule.fallback_reason", reason))
	span.SetStatus(codes.Ok, "")
	return Fallback(places, params)
}

func (e *Engine) suggest(ctx context.Context, places []types.Place, params types.TripParameters) ([]types.ScheduledPlace, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.oracle.Suggest(ctx, places, params)
	e.metrics.RecordUpstreamCall(ctx, "oracle.suggest", time.Since(start))
	if err != nil {
		return nil, &types.UpstreamError{Op: "oracle.suggest", Err: err}
	}
	return sanitize(raw, places, params), nil
}

// sanitize keeps oracle items that name a known place once, with a day in
// range and a time inside the window. Place data comes from the input, not the oracle.
func sanitize(raw []types.ScheduledPlace, places []types.Place, params types.TripParameters) []types.ScheduledPlace {
	byID := make(map[string]types.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}
	window := dailyWindow(params)
	seen := make(map[string]bool, len(raw))

	out := make([]types.ScheduledPlace, 0, len(raw))
	for _, s := range raw {
		p, ok := byID[s.ID]
		if !ok || seen[s.ID] {
			continue
		}
		if s.Day < 1 || s.Day > params.Duration {
			continue
		}
		if s.Time < window.Start || s.Time > window.End {
			continue
		}
		seen[s.ID] = true
		out = append(out, types.ScheduledPlace{Place: p, Day: s.Day, Time: s.Time})
	}
	sortByDayTime(out)
	return out
}

// TargetCount is how many places an itinerary of the given length keeps.
func TargetCount(duration int) int {
	switch duration {
	case 1:
		return 4
	case 2:
		return 8
	case 3:
		return 12
	}
	return 20
}

// Fallback is the deterministic itinerary: best scores first, truncated to
// TargetCount, spread evenly over each day's window.
func Fallback(places []types.Place, params types.TripParameters) []types.ScheduledPlace {
	duration := max(params.Duration, 1)
	window := dailyWindow(params)

	sorted := make([]types.Place, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScoreOrZero() > sorted[j].ScoreOrZero()
	})
	if n := TargetCount(duration); len(sorted) > n {
		sorted = sorted[:n]
	}

	n := len(sorted)
	out := make([]types.ScheduledPlace, n)
	if n == 0 {
		return out
	}

	itemsPerDay := n / duration
	leftovers := n % duration
	if itemsPerDay == 0 {
		// Fewer places than days: one per day.
		itemsPerDay, leftovers = 1, 0
	}
	increment := max(int(window.End-window.Start)/itemsPerDay, 1)

	// A day is full once its clock has walked itemsPerDay increments.
	for i := 0; i < n-leftovers; i++ {
		day := min(i/itemsPerDay+1, duration)
		// Windows shorter than a day's items share their last minute.
		clock := min(window.Start+types.Clock((i%itemsPerDay)*increment), window.End)
		out[i] = types.ScheduledPlace{Place: sorted[i], Day: day, Time: clock}
	}

	// Leftovers go to the earliest days, half an increment after the last regular slot.
	late := min(window.Start+types.Clock((itemsPerDay-1)*increment+increment/2), window.End)
	for j := 0; j < leftovers; j++ {
		i := n - leftovers + j
		out[i] = types.ScheduledPlace{Place: sorted[i], Day: j + 1, Time: late}
	}

	sortByDayTime(out)
	return out
}

func dailyWindow(params types.TripParameters) types.TimeWindow {
	if params.Timings.IsZero() || params.Timings.Start >= params.Timings.End {
		return DefaultWindow
	}
	return params.Timings
}

func sortByDayTime(s []types.ScheduledPlace) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Day != s[j].Day {
			return s[i].Day < s[j].Day
		}
		return s[i].Time < s[j].Time
	})
}
