package places

import (
	"strings"
	"time"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	defaultRating     = 3.0
	defaultPopularity = 1
	defaultPriceTier  = 2
)

// Normalizer maps directory records to Places.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerWithClock pins "today" for hours selection.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize never fails: missing optional fields get defaults and are marked in Place.Imputed.
func (n *Normalizer) Normalize(category types.Category, raw RawPlace) types.Place {
	p := types.Place{
		ID:       raw.PlaceID,
		Category: category,
		Name:     strings.TrimSpace(raw.Name),
		Address:  raw.FormattedAddress,
		Icon:     raw.Icon,
	}

	if raw.Geometry != nil {
		p.Location = types.Coordinates{Lat: raw.Geometry.Location.Lat, Lon: raw.Geometry.Location.Lng}
	} else {
		p.Imputed |= types.FieldLocation
	}

	if raw.BusinessStatus != nil && *raw.BusinessStatus != "" {
		p.BusinessStatus = *raw.BusinessStatus
	} else {
		p.BusinessStatus = types.StatusOperational
		p.Imputed |= types.FieldStatus
	}

	if raw.Rating != nil {
		p.Rating = *raw.Rating
	} else {
		p.Rating = defaultRating
		p.Imputed |= types.FieldRating
	}

	if raw.UserRatingsTotal != nil {
		p.Popularity = *raw.UserRatingsTotal
	} else {
		p.Popularity = defaultPopularity
		p.Imputed |= types.FieldPopularity
	}

	if raw.PriceLevel != nil {
		p.PriceTier = *raw.PriceLevel
	} else {
		p.PriceTier = defaultPriceTier
		p.Imputed |= types.FieldPriceTier
	}

	var found bool
	if raw.OpeningHours != nil && len(raw.OpeningHours.WeekdayText) > 0 {
		p.Hours, found = TodayHours(raw.OpeningHours.WeekdayText, n.now().Weekday())
	}
	if !found {
		p.Hours = DefaultHours
		p.Imputed |= types.FieldHours
	}

	if s, ok := servingTag(raw); ok {
		p.Servings = []types.Serving{s}
	}

	if raw.EditorialSummary != nil {
		p.Description = strings.TrimSpace(raw.EditorialSummary.Overview)
	}
	return p
}

// servingTag returns only the first flag that is set, in meal order.
func servingTag(raw RawPlace) (types.Serving, bool) {
	flags := []struct {
		set *bool
		tag types.Serving
	}{
		{raw.ServesBreakfast, types.ServingBreakfast},
		{raw.ServesBrunch, types.ServingBrunch},
		{raw.ServesLunch, types.ServingLunch},
		{raw.ServesDinner, types.ServingDinner},
	}
	for _, f := range flags {
		if f.set != nil && *f.set {
			return f.tag, true
		}
	}
	return "", false
}
