package util

import (
	"encoding/json"
	"fmt"
	"os"

	"venue-scraper/models"
)

// ReadSearchPlacesResponseFromJSON loads a SearchPlacesResponse from JSON on disk.
func ReadSearchPlacesResponseFromJSON(filePath string) (*models.SearchPlacesResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.SearchPlacesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SearchPlacesResponse: %w", err)
	}
	return &resp, nil
}

// ReadPlaceDetailsResponsesFromJSON loads details payloads keyed by place id.
func ReadPlaceDetailsResponsesFromJSON(filePath string) (map[string]models.PlaceDetailsResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp map[string]models.PlaceDetailsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PlaceDetailsResponse map: %w", err)
	}
	return resp, nil
}
