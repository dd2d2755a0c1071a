package types

import "strings"

type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryTourist    Category = "tourist"
	CategoryTransit    Category = "transit"
)

// Categories lists the candidate sets in the order they are merged for filtering.
var Categories = []Category{CategoryRestaurant, CategoryTransit, CategoryTourist}

const StatusOperational = "OPERATIONAL"

type Serving string

const (
	ServingBreakfast Serving = "breakfast"
	ServingBrunch    Serving = "brunch"
	ServingLunch     Serving = "lunch"
	ServingDinner    Serving = "dinner"
)

// FieldSet marks place fields that hold a substituted default rather than directory data.
type FieldSet uint8

const (
	FieldStatus FieldSet = 1 << iota
	FieldRating
	FieldPopularity
	FieldPriceTier
	FieldHours
	FieldLocation
)

func (f FieldSet) Has(x FieldSet) bool { return f&x != 0 }

type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

type Place struct {
	ID             string      `json:"id"`
	Category       Category    `json:"category"`
	Name           string      `json:"name"`
	Location       Coordinates `json:"location"`
	BusinessStatus string      `json:"business_status"`
	Rating         float64     `json:"rating"`
	Popularity     int         `json:"user_ratings_total"`
	PriceTier      int         `json:"price_level"`
	Servings       []Serving   `json:"servings,omitempty"`
	Hours          string      `json:"opening_hours"`
	Description    string      `json:"description,omitempty"`
	Address        string      `json:"address,omitempty"`
	Icon           string      `json:"icon,omitempty"`
	Score          *float64    `json:"score,omitempty"`

	DetailsFetched bool     `json:"details_fetched"`
	Imputed        FieldSet `json:"imputed,omitempty"`
}

// IsOperational compares the business status case-insensitively.
func (p Place) IsOperational() bool {
	return strings.EqualFold(p.BusinessStatus, StatusOperational)
}

// HasLocation is false when the directory returned no geometry.
func (p Place) HasLocation() bool {
	return !p.Imputed.Has(FieldLocation)
}

// ScoreOrZero treats an unscored place as 0.
func (p Place) ScoreOrZero() float64 {
	if p.Score == nil {
		return 0
	}
	return *p.Score
}

// ScheduledPlace is a place with its itinerary slot.
type ScheduledPlace struct {
	Place
	Day  int   `json:"day"`
	Time Clock `json:"time"`
}

// CandidateSets holds the three per-category results of one resolution.
type CandidateSets struct {
	Restaurants []Place `json:"restaurant"`
	Tourist     []Place `json:"tourist"`
	Transit     []Place `json:"transit"`
}

// Get returns the set for c.
func (c CandidateSets) Get(cat Category) []Place {
	switch cat {
	case CategoryRestaurant:
		return c.Restaurants
	case CategoryTourist:
		return c.Tourist
	case CategoryTransit:
		return c.Transit
	}
	return nil
}

// Set replaces the set for c.
func (c *CandidateSets) Set(cat Category, places []Place) {
	switch cat {
	case CategoryRestaurant:
		c.Restaurants = places
	case CategoryTourist:
		c.Tourist = places
	case CategoryTransit:
		c.Transit = places
	}
}

func (c CandidateSets) Len() int {
	return len(c.Restaurants) + len(c.Tourist) + len(c.Transit)
}
