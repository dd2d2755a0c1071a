package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TransportMode is the travel mode handed to routing-aware consumers.
type TransportMode string

const (
	ModeDriving   TransportMode = "DRIVING"
	ModeWalking   TransportMode = "WALKING"
	ModeBicycling TransportMode = "BICYCLING"
	ModeTransit   TransportMode = "TRANSIT"
)

// ParseTransportMode accepts the canonical names case-insensitively.
// BIKING is an alias of BICYCLING.
func ParseTransportMode(s string) (TransportMode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DRIVING", "CAR":
		return ModeDriving, true
	case "WALKING":
		return ModeWalking, true
	case "BICYCLING", "BIKING":
		return ModeBicycling, true
	case "TRANSIT":
		return ModeTransit, true
	}
	return "", false
}

type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

func ParseBudget(s string) (Budget, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "tight", "cheap":
		return BudgetLow, true
	case "medium", "moderate":
		return BudgetMedium, true
	case "high", "unlimited", "luxury":
		return BudgetHigh, true
	}
	return "", false
}

// Clock is a time of day in minutes after midnight.
type Clock int

const (
	MinutesPerDay = 24 * 60
	EndOfDay      = Clock(MinutesPerDay - 1)
)

// ParseClock reads "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock(hh*60 + mm), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TimeWindow is a daily interval, both ends inclusive.
type TimeWindow struct {
	Start Clock
	End   Clock
}

// ParseTimeWindow reads "HH:MM-HH:MM".
func ParseTimeWindow(s string) (TimeWindow, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("invalid time window %q", s)
	}
	start, err := ParseClock(a)
	if err != nil {
		return TimeWindow{}, err
	}
	end, err := ParseClock(b)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: start, End: end}, nil
}

func (w TimeWindow) IsZero() bool { return w.Start == 0 && w.End == 0 }

// Overlaps reports whether the two windows share at least one minute.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start <= o.End && o.Start <= w.End
}

func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

func (w TimeWindow) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *TimeWindow) UnmarshalText(b []byte) error {
	v, err := ParseTimeWindow(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// TripParameters is the structured form of a trip request.
type TripParameters struct {
	Locations       []string      `json:"locations"`
	Origin          string        `json:"origin"`
	Duration        int           `json:"duration"`
	ModeOfTransport TransportMode `json:"mode_of_transport"`
	Budget          Budget        `json:"budget"`
	Timings         TimeWindow    `json:"timings"`
	RadiusKm        float64       `json:"distance"`
	Cuisine         string        `json:"cuisine,omitempty"`
	Attraction      string        `json:"attraction,omitempty"`
	PartySize       int           `json:"no_of_people"`
	TripType        string        `json:"type_of_trip,omitempty"`
}

// Validate checks the invariants the pipeline relies on.
func (p TripParameters) Validate() error {
	if len(p.Locations) == 0 {
		return &InputError{Field: "locations", Reason: "at least one location is required"}
	}
	for _, l := range p.Locations {
		if strings.TrimSpace(l) == "" {
			return &InputError{Field: "locations", Reason: "location must not be blank"}
		}
	}
	if p.Duration < 1 {
		return &InputError{Field: "duration", Reason: "must be at least 1 day"}
	}
	if p.Timings.Start >= p.Timings.End {
		return &InputError{Field: "timings", Reason: "window start must be before end"}
	}
	if p.RadiusKm <= 0 {
		return &InputError{Field: "distance", Reason: "radius must be positive"}
	}
	if p.ModeOfTransport != "" {
		if _, ok := ParseTransportMode(string(p.ModeOfTransport)); !ok {
			return &InputError{Field: "mode_of_transport", Reason: fmt.Sprintf("unknown mode %q", p.ModeOfTransport)}
		}
	}
	if p.Budget != "" {
		if _, ok := ParseBudget(string(p.Budget)); !ok {
			return &InputError{Field: "budget", Reason: fmt.Sprintf("unknown budget %q", p.Budget)}
		}
	}
	if p.PartySize < 0 {
		return &InputError{Field: "no_of_people", Reason: "must not be negative"}
	}
	return nil
}

// Defaults applied to a freshly extracted request.
const (
	DefaultDuration  = 2
	DefaultRadiusKm  = 20
	DefaultPartySize = 2
)

// DefaultTimings is the daily window assumed when none was stated.
var DefaultTimings = TimeWindow{Start: 7 * 60, End: 20 * 60}

// WithDefaults fills unset fields. An unset transport mode is derived from
// budget and party size: a low budget walks alone or cycles below four people,
// a medium budget takes transit up to four people, everything else drives.
func (p TripParameters) WithDefaults() TripParameters {
	if p.Origin == "" && len(p.Locations) > 0 {
		p.Origin = strings.TrimSpace(p.Locations[0])
	}
	if p.Timings.IsZero() {
		p.Timings = DefaultTimings
	}
	if p.RadiusKm <= 0 {
		p.RadiusKm = DefaultRadiusKm
	}
	if p.PartySize <= 0 {
		p.PartySize = DefaultPartySize
	}
	if p.Duration <= 0 {
		p.Duration = DefaultDuration
	}
	if b, ok := ParseBudget(string(p.Budget)); ok {
		p.Budget = b
	} else if p.Budget == "" {
		p.Budget = BudgetMedium
	}

	if m, ok := ParseTransportMode(string(p.ModeOfTransport)); ok {
		p.ModeOfTransport = m
		return p
	}
	p.ModeOfTransport = ModeDriving
	switch p.Budget {
	case BudgetLow:
		if p.PartySize <= 1 {
			p.ModeOfTransport = ModeWalking
		} else if p.PartySize < 4 {
			p.ModeOfTransport = ModeBicycling
		}
	case BudgetMedium:
		if p.PartySize <= 4 {
			p.ModeOfTransport = ModeTransit
		}
	}
	return p
}

// TripResponse is what both entry points return.
type TripResponse struct {
	ID     uuid.UUID        `json:"id"`
	Prompt TripParameters   `json:"prompt"`
	Places []ScheduledPlace `json:"places"`
}

// ResolveTripRequest is the body of the free-text endpoint.
type ResolveTripRequest struct {
	Prompt string `json:"prompt"`
}
