package places

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"venue-scraper/api"
	"venue-scraper/models"
	"venue-scraper/models/place"
)

// PlacesApiClient embeds the common HTTPClient
type PlacesApiClient struct {
	*api.HTTPClient
	apiKey         string
	pageTokenDelay time.Duration
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient) *PlacesApiClient {
	return &PlacesApiClient{
		HTTPClient: httpClient,
	}
}

func (c *PlacesApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// SetPageTokenDelay sets how long to wait before requesting a follow-up page.
func (c *PlacesApiClient) SetPageTokenDelay(d time.Duration) {
	c.pageTokenDelay = d
}

// SearchPlaces runs a text search and follows next_page_token until there are
// no more pages or MaxResults summaries have been collected. Follow-up pages
// are requested with the token alone; the rest of the search is bound to it
// upstream.
func (c *PlacesApiClient) SearchPlaces(ctx context.Context, params SearchParams) ([]models.PlaceSummary, error) {
	results := []models.PlaceSummary{}
	if params.MaxResults <= 0 {
		return results, nil
	}

	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("location", params.Location)
	query.Set("radius", strconv.Itoa(params.RadiusMeters))
	query.Set("key", c.apiKey)

	for page := 1; ; page++ {
		var response models.SearchPlacesResponse
		if err := c.Request(ctx, TEXT_SEARCH_ENDPOINT, query, &response); err != nil {
			return nil, fmt.Errorf("text search page %d: %w", page, err)
		}
		if err := checkStatus(TEXT_SEARCH_ENDPOINT, response.Status, response.ErrorMessage); err != nil {
			return nil, fmt.Errorf("text search page %d: %w", page, err)
		}

		results = append(results, response.Results...)
		if response.NextPageToken == "" || len(results) >= params.MaxResults {
			break
		}

		if err := c.waitForPageToken(ctx); err != nil {
			return nil, err
		}
		query = url.Values{}
		query.Set("pagetoken", response.NextPageToken)
		query.Set("key", c.apiKey)
	}

	if len(results) > params.MaxResults {
		results = results[:params.MaxResults]
	}
	return results, nil
}

// GetPlaceDetails retrieves the full record of a place. A payload without a
// result envelope yields an empty record rather than an error.
func (c *PlacesApiClient) GetPlaceDetails(ctx context.Context, placeID string) (*place.PlaceDetails, error) {
	query := url.Values{}
	query.Set("place_id", placeID)
	query.Set("key", c.apiKey)

	var response models.PlaceDetailsResponse
	if err := c.Request(ctx, PLACE_DETAILS_ENDPOINT, query, &response); err != nil {
		return nil, fmt.Errorf("place details %s: %w", placeID, err)
	}
	if response.Result == nil {
		return &place.PlaceDetails{}, nil
	}
	return response.Result, nil
}

// DownloadPhoto streams the photo behind photoReference into w.
func (c *PlacesApiClient) DownloadPhoto(ctx context.Context, photoReference string, maxWidth int, w io.Writer) (int64, error) {
	query := url.Values{}
	query.Set("maxwidth", strconv.Itoa(maxWidth))
	query.Set("photoreference", photoReference)
	query.Set("key", c.apiKey)

	n, err := c.Download(ctx, PLACE_PHOTO_ENDPOINT, query, w)
	if err != nil {
		return n, fmt.Errorf("place photo: %w", err)
	}
	return n, nil
}

func (c *PlacesApiClient) waitForPageToken(ctx context.Context) error {
	if c.pageTokenDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.pageTokenDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
