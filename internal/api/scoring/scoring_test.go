package scoring

import (
	"testing"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(id string, rating float64, popularity int) types.Place {
	return types.Place{ID: id, Rating: rating, Popularity: popularity}
}

func TestScore_RangeAndOrder(t *testing.T) {
	in := []types.Place{
		place("a", 4.8, 1200),
		place("b", 3.1, 15),
		place("c", 4.2, 640),
		place("d", 0, 0),
	}
	out := NewEngine().Score(in)

	require.Len(t, out, len(in))
	for i, p := range out {
		assert.Equal(t, in[i].ID, p.ID)
		require.NotNil(t, p.Score)
		assert.GreaterOrEqual(t, *p.Score, 0.0)
		assert.LessOrEqual(t, *p.Score, 1.0)
	}
	assert.InDelta(t, 1.0, *out[0].Score, 1e-9)
	assert.InDelta(t, 0.0, *out[3].Score, 1e-9)
	assert.Nil(t, in[0].Score, "input must not be mutated")
}

func TestScore_UniformInputsScoreHalf(t *testing.T) {
	out := NewEngine().Score([]types.Place{place("a", 4, 10), place("b", 4, 10), place("c", 4, 10)})
	for _, p := range out {
		assert.Equal(t, 0.5, *p.Score)
	}

	single := NewEngine().Score([]types.Place{place("only", 1.5, 3)})
	assert.Equal(t, 0.5, *single[0].Score)
}

func TestScore_IndependentNormalization(t *testing.T) {
	// Ratings uniform, popularity spread: rating contributes 0.25 to everyone.
	out := NewEngine().Score([]types.Place{place("a", 4, 0), place("b", 4, 100)})
	assert.InDelta(t, 0.25, *out[0].Score, 1e-9)
	assert.InDelta(t, 0.75, *out[1].Score, 1e-9)
}

func TestScore_LowScoreFloor(t *testing.T) {
	in := []types.Place{place("low", 1, 0), place("high", 5, 100)}

	plain := NewEngine().Score(in)
	assert.InDelta(t, 0.0, *plain[0].Score, 1e-9)

	floored := NewEngine(WithLowScoreFloor()).Score(in)
	assert.Equal(t, 0.4, *floored[0].Score)
	assert.InDelta(t, 1.0, *floored[1].Score, 1e-9)
}

func TestScore_Empty(t *testing.T) {
	assert.Empty(t, NewEngine().Score(nil))
}
