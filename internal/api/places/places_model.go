package places

// RawPlace is a directory record as returned by text search or place details.
// Optional fields are pointers so a missing value can be told apart from a zero one.
type RawPlace struct {
	PlaceID          string            `json:"place_id"`
	Name             string            `json:"name"`
	Geometry         *Geometry         `json:"geometry,omitempty"`
	BusinessStatus   *string           `json:"business_status,omitempty"`
	Rating           *float64          `json:"rating,omitempty"`
	UserRatingsTotal *int              `json:"user_ratings_total,omitempty"`
	PriceLevel       *int              `json:"price_level,omitempty"`
	OpeningHours     *OpeningHours     `json:"opening_hours,omitempty"`
	ServesBreakfast  *bool             `json:"serves_breakfast,omitempty"`
	ServesBrunch     *bool             `json:"serves_brunch,omitempty"`
	ServesLunch      *bool             `json:"serves_lunch,omitempty"`
	ServesDinner     *bool             `json:"serves_dinner,omitempty"`
	EditorialSummary *EditorialSummary `json:"editorial_summary,omitempty"`
	FormattedAddress string            `json:"formatted_address,omitempty"`
	Icon             string            `json:"icon,omitempty"`
	Types            []string          `json:"types,omitempty"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type EditorialSummary struct {
	Overview string `json:"overview"`
}

type searchResponse struct {
	Results      []RawPlace `json:"results"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

type detailResponse struct {
	Result       RawPlace `json:"result"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
}
