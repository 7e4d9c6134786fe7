package models

import "venue-scraper/models/place"

// PlaceDetailsResponse wraps the details endpoint payload. Result is nil when
// the provider omits the envelope.
type PlaceDetailsResponse struct {
	HTMLAttributions []string            `json:"html_attributions"`
	Result           *place.PlaceDetails `json:"result,omitempty"`
	Status           string              `json:"status"`
	ErrorMessage     string              `json:"error_message,omitempty"`
}
