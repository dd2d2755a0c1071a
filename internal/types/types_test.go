package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() TripParameters {
	return TripParameters{
		Locations: []string{"San Diego"},
		Duration:  2,
		Timings:   TimeWindow{Start: 9 * 60, End: 17 * 60},
		RadiusKm:  20,
	}
}

func TestTripParameters_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *TripParameters)
		field  string
	}{
		{"valid", func(p *TripParameters) {}, ""},
		{"no locations", func(p *TripParameters) { p.Locations = nil }, "locations"},
		{"blank location", func(p *TripParameters) { p.Locations = []string{" "} }, "locations"},
		{"zero duration", func(p *TripParameters) { p.Duration = 0 }, "duration"},
		{"inverted window", func(p *TripParameters) { p.Timings = TimeWindow{Start: 600, End: 500} }, "timings"},
		{"empty window", func(p *TripParameters) { p.Timings = TimeWindow{} }, "timings"},
		{"zero radius", func(p *TripParameters) { p.RadiusKm = 0 }, "distance"},
		{"bad mode", func(p *TripParameters) { p.ModeOfTransport = "TELEPORT" }, "mode_of_transport"},
		{"bad budget", func(p *TripParameters) { p.Budget = "infinite" }, "budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTimeWindow_JSON(t *testing.T) {
	var p TripParameters
	err := json.Unmarshal([]byte(`{"locations":["Lisbon"],"duration":1,"timings":"07:30-20:00","distance":5}`), &p)
	require.NoError(t, err)
	assert.Equal(t, Clock(7*60+30), p.Timings.Start)
	assert.Equal(t, Clock(20*60), p.Timings.End)

	out, err := json.Marshal(p.Timings)
	require.NoError(t, err)
	assert.JSONEq(t, `"07:30-20:00"`, string(out))
}

func TestParseClock_Invalid(t *testing.T) {
	for _, s := range []string{"", "7", "24:00", "12:60", "ab:cd"} {
		_, err := ParseClock(s)
		assert.Error(t, err, s)
	}
}

func TestTimeWindow_Overlaps(t *testing.T) {
	trip := TimeWindow{Start: 9 * 60, End: 17 * 60}
	assert.False(t, trip.Overlaps(TimeWindow{Start: 18 * 60, End: 22 * 60}))
	assert.True(t, trip.Overlaps(TimeWindow{Start: 17 * 60, End: 22 * 60}))
	assert.True(t, trip.Overlaps(TimeWindow{Start: 6 * 60, End: 9 * 60}))
}

func TestParseTransportMode_BikingAlias(t *testing.T) {
	m, ok := ParseTransportMode("biking")
	require.True(t, ok)
	assert.Equal(t, ModeBicycling, m)
}

func TestUpstreamError_Is(t *testing.T) {
	cause := errors.New("boom")
	err := &UpstreamError{Op: "places.search", Err: cause}
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, ErrNoCandidates, ErrUpstream)
	assert.ErrorIs(t, ErrInvalidRequest, ErrInvalidInput)
}

func TestWithDefaults(t *testing.T) {
	p := TripParameters{Locations: []string{"Irvine", "Los Angeles"}}.WithDefaults()

	assert.Equal(t, "Irvine", p.Origin)
	assert.Equal(t, DefaultTimings, p.Timings)
	assert.Equal(t, 20.0, p.RadiusKm)
	assert.Equal(t, 2, p.PartySize)
	assert.Equal(t, 2, p.Duration)
	assert.Equal(t, BudgetMedium, p.Budget)
	assert.Equal(t, ModeTransit, p.ModeOfTransport)
	require.NoError(t, p.Validate())
}

func TestWithDefaults_DerivedMode(t *testing.T) {
	tests := []struct {
		budget Budget
		party  int
		want   TransportMode
	}{
		{BudgetLow, 1, ModeWalking},
		{BudgetLow, 3, ModeBicycling},
		{BudgetLow, 4, ModeDriving},
		{BudgetMedium, 4, ModeTransit},
		{BudgetMedium, 5, ModeDriving},
		{BudgetHigh, 1, ModeDriving},
		{"tight", 1, ModeWalking},
	}
	for _, tt := range tests {
		t.Run(string(tt.budget), func(t *testing.T) {
			p := TripParameters{Locations: []string{"x"}, Budget: tt.budget, PartySize: tt.party}.WithDefaults()
			assert.Equal(t, tt.want, p.ModeOfTransport)
		})
	}
}

func TestWithDefaults_ExplicitModeKept(t *testing.T) {
	p := TripParameters{Locations: []string{"x"}, ModeOfTransport: "BIKING", Budget: BudgetHigh}.WithDefaults()
	assert.Equal(t, ModeBicycling, p.ModeOfTransport)
}
