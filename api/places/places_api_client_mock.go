package places

import (
	"context"
	"fmt"
	"io"
	"os"

	"venue-scraper/config"
	"venue-scraper/models"
	"venue-scraper/models/place"
	"venue-scraper/util"
)

// PlacesApiClientMock answers from the JSON fixtures under resources/.
type PlacesApiClientMock struct {
	searchPath  string
	detailsPath string
	photoPath   string
}

// NewPlacesApiClientMock creates a mock reading the default resource files.
func NewPlacesApiClientMock() *PlacesApiClientMock {
	return NewPlacesApiClientMockFromFiles(
		config.GetResourcePath(config.SEARCH_PLACES_RESPONSE_RESOURCE),
		config.GetResourcePath(config.PLACE_DETAILS_RESPONSE_RESOURCE),
		config.GetResourcePath(config.PLACE_PHOTO_RESOURCE),
	)
}

func NewPlacesApiClientMockFromFiles(searchPath, detailsPath, photoPath string) *PlacesApiClientMock {
	return &PlacesApiClientMock{
		searchPath:  searchPath,
		detailsPath: detailsPath,
		photoPath:   photoPath,
	}
}

// SearchPlaces returns the fixture's results capped at MaxResults. The fixture
// is a single page; its next_page_token is ignored.
func (c *PlacesApiClientMock) SearchPlaces(ctx context.Context, params SearchParams) ([]models.PlaceSummary, error) {
	response, err := util.ReadSearchPlacesResponseFromJSON(c.searchPath)
	if err != nil {
		return nil, err
	}

	results := response.Results
	if params.MaxResults <= 0 {
		return []models.PlaceSummary{}, nil
	}
	if len(results) > params.MaxResults {
		results = results[:params.MaxResults]
	}
	return results, nil
}

// GetPlaceDetails looks the place up in the details fixture, which maps place
// ids to details payloads.
func (c *PlacesApiClientMock) GetPlaceDetails(ctx context.Context, placeID string) (*place.PlaceDetails, error) {
	responses, err := util.ReadPlaceDetailsResponsesFromJSON(c.detailsPath)
	if err != nil {
		return nil, err
	}

	response, ok := responses[placeID]
	if !ok || response.Result == nil {
		return &place.PlaceDetails{}, nil
	}
	return response.Result, nil
}

// DownloadPhoto copies the fixture image regardless of the reference.
func (c *PlacesApiClientMock) DownloadPhoto(ctx context.Context, photoReference string, maxWidth int, w io.Writer) (int64, error) {
	f, err := os.Open(c.photoPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open photo fixture %q: %w", c.photoPath, err)
	}
	defer f.Close()
	return io.Copy(w, f)
}
