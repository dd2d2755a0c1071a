package scoring

import "github.com/FACorreiaa/go-trip-itinerary/internal/types"

const (
	ratingWeight     = 0.5
	popularityWeight = 0.5

	lowScoreThreshold = 0.05
	lowScoreFloor     = 0.4
)

// Engine assigns a combined, min-max normalized score to each place.
type Engine struct {
	floorLowScores bool
}

type Option func(*Engine)

// WithLowScoreFloor lifts any score below 0.05 up to 0.4.
func WithLowScoreFloor() Option {
	return func(e *Engine) { e.floorLowScores = true }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score returns a copy of places with Score set. Length and order are preserved.
func (e *Engine) Score(places []types.Place) []types.Place {
	out := make([]types.Place, len(places))
	copy(out, places)
	if len(out) == 0 {
		return out
	}

	ratings := make([]float64, len(out))
	popularity := make([]float64, len(out))
	for i, p := range out {
		ratings[i] = p.Rating
		popularity[i] = float64(p.Popularity)
	}
	normRating := minMax(ratings)
	normPopularity := minMax(popularity)

	for i := range out {
		s := ratingWeight*normRating[i] + popularityWeight*normPopularity[i]
		if e.floorLowScores && s < lowScoreThreshold {
			s = lowScoreFloor
		}
		out[i].Score = &s
	}
	return out
}

// minMax rescales xs to [0,1]. A uniform input maps to 0.5 everywhere.
func minMax(xs []float64) []float64 {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		if hi == lo {
			out[i] = 0.5
			continue
		}
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}
