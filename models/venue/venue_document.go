package venue

// VenueDocument is everything built for one venue, stored as a single JSON
// value in the geo index.
type VenueDocument struct {
	Venue        Venue         `json:"venue"`
	Images       []VenueImage  `json:"images"`
	OpeningHours []OpeningHour `json:"opening_hours"`
	PlaceID      string        `json:"place_id"`
	Lat          float64       `json:"lat"`
	Lng          float64       `json:"lng"`
	HasLocation  bool          `json:"has_location"`
}
