package geo

import (
	"testing"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lisbon = types.Coordinates{Lat: 38.7223, Lon: -9.1393}
	porto  = types.Coordinates{Lat: 41.1579, Lon: -8.6291}
	madrid = types.Coordinates{Lat: 40.4168, Lon: -3.7038}
)

func TestDistance_Identity(t *testing.T) {
	for _, p := range []types.Coordinates{lisbon, porto, madrid, {}} {
		assert.Zero(t, Distance(p, p))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	assert.Equal(t, Distance(lisbon, porto), Distance(porto, lisbon))
	assert.Equal(t, Distance(madrid, porto), Distance(porto, madrid))
}

func TestDistance_Known(t *testing.T) {
	// Lisbon to Porto is roughly 274 km as the crow flies.
	assert.InDelta(t, 274, Distance(lisbon, porto), 3)
}

func TestDistance_TriangleInequality(t *testing.T) {
	ab := Distance(lisbon, porto)
	bc := Distance(porto, madrid)
	ac := Distance(lisbon, madrid)
	assert.LessOrEqual(t, ac, ab+bc+1e-9)
}

func TestCentroid(t *testing.T) {
	c, err := Centroid([]types.Coordinates{{Lat: 0, Lon: 0}, {Lat: 2, Lon: 4}})
	require.NoError(t, err)
	assert.Equal(t, types.Coordinates{Lat: 1, Lon: 2}, c)

	_, err = Centroid(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestWithinRadius_StableAndInclusive(t *testing.T) {
	d := Distance(lisbon, porto)
	got := WithinRadius([]types.Coordinates{madrid, porto, lisbon}, lisbon, d)
	assert.Equal(t, []types.Coordinates{porto, lisbon}, got)
}
