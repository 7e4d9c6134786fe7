package models

import "venue-scraper/models/place"

// SearchPlacesResponse is one page of the Places text-search endpoint.
type SearchPlacesResponse struct {
	HTMLAttributions []string       `json:"html_attributions"`
	NextPageToken    string         `json:"next_page_token,omitempty"`
	Results          []PlaceSummary `json:"results"`
	Status           string         `json:"status"`
	ErrorMessage     string         `json:"error_message,omitempty"`
}

// PlaceSummary is the short form of a place returned by text search.
type PlaceSummary struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	FormattedAddress string          `json:"formatted_address,omitempty"`
	Geometry         *place.Geometry `json:"geometry,omitempty"`
	Rating           float64         `json:"rating,omitempty"`
	UserRatingsTotal int             `json:"user_ratings_total,omitempty"`
	Types            []string        `json:"types,omitempty"`
}
