package geo

import (
	"errors"
	"math"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const earthRadiusKm = 6371

// ErrEmptyInput is returned by Centroid for an empty point set.
var ErrEmptyInput = errors.New("geo: empty input")

// Distance is the great-circle distance between a and b in kilometers (Haversine).
func Distance(a, b types.Coordinates) float64 {
	if a == b {
		return 0
	}
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Centroid is the arithmetic mean of latitudes and longitudes.
func Centroid(points []types.Coordinates) (types.Coordinates, error) {
	if len(points) == 0 {
		return types.Coordinates{}, ErrEmptyInput
	}
	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return types.Coordinates{Lat: lat / n, Lon: lon / n}, nil
}

// WithinRadius returns the points no farther than radiusKm from center, in input order.
func WithinRadius(points []types.Coordinates, center types.Coordinates, radiusKm float64) []types.Coordinates {
	out := make([]types.Coordinates, 0, len(points))
	for _, p := range points {
		if Distance(p, center) <= radiusKm {
			out = append(out, p)
		}
	}
	return out
}
