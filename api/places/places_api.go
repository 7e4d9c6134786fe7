package places

import (
	"context"
	"fmt"
	"io"

	"venue-scraper/models"
	"venue-scraper/models/place"
)

const (
	TEXT_SEARCH_ENDPOINT   = "/textsearch/json"
	PLACE_DETAILS_ENDPOINT = "/details/json"
	PLACE_PHOTO_ENDPOINT   = "/photo"
)

// Statuses the provider uses for a well-formed response.
const (
	STATUS_OK           = "OK"
	STATUS_ZERO_RESULTS = "ZERO_RESULTS"
)

// SearchParams describes one text search.
type SearchParams struct {
	Query        string
	Location     string
	RadiusMeters int
	MaxResults   int
}

// PlacesAPI defines the interface for interacting with the Places API
type PlacesAPI interface {
	SearchPlaces(ctx context.Context, params SearchParams) ([]models.PlaceSummary, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*place.PlaceDetails, error)
	DownloadPhoto(ctx context.Context, photoReference string, maxWidth int, w io.Writer) (int64, error)
}

// APIStatusError is returned when the provider answers 2xx but reports a
// failure in the payload status, e.g. REQUEST_DENIED.
type APIStatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *APIStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places api %s returned status %s", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("places api %s returned status %s: %s", e.Endpoint, e.Status, e.Message)
}

func checkStatus(endpoint, status, message string) error {
	switch status {
	case "", STATUS_OK, STATUS_ZERO_RESULTS:
		return nil
	default:
		return &APIStatusError{Endpoint: endpoint, Status: status, Message: message}
	}
}
