package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"venue-scraper/db"
	"venue-scraper/models/venue"
)

const VENUES_GEO_KEY_V1 = "venues_geo_v1"
const VENUES_GEO_PLACE_MEMBER_PREFIX_V1 = "venues_geo_place_v1:"
const VENUES_GEO_PLACE_MEMBER_FORMAT_V1 = VENUES_GEO_PLACE_MEMBER_PREFIX_V1 + "%s"

// ErrVenueNotFound is returned when no document is stored for a venue id.
var ErrVenueNotFound = errors.New("venue not found")

// RedisVenueDAO handles venue document operations using Redis.
type RedisVenueDAO struct {
	client db.RedisClient
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

func venueKey(venueID string) string {
	return fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, venueID)
}

// UpsertVenueDocument stores the document as a geolocation with the document's JSON.
func (dao *RedisVenueDAO) UpsertVenueDocument(ctx context.Context, doc venue.VenueDocument) error {
	if doc.Venue.ID == "" {
		return errors.New("venue document has no id")
	}
	return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, venueKey(doc.Venue.ID), doc.Lat, doc.Lng, doc)
}

// GetNearbyVenues retrieves the documents within radius km, nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(ctx context.Context, lat, lon, radius float64) ([]venue.VenueDocument, error) {
	docsJSON, err := dao.client.GetLocationsWithinRadius(ctx, VENUES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	docs := make([]venue.VenueDocument, len(docsJSON))
	for i, docJSON := range docsJSON {
		if err := json.Unmarshal([]byte(docJSON), &docs[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
		}
	}
	return docs, nil
}

// GetVenueDocument loads a single document by venue id.
func (dao *RedisVenueDAO) GetVenueDocument(ctx context.Context, venueID string) (*venue.VenueDocument, error) {
	str, err := dao.client.Get(ctx, venueKey(venueID))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrVenueNotFound, venueID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue from redis: %w", err)
	}

	var doc venue.VenueDocument
	if err := json.Unmarshal([]byte(str), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
	}
	return &doc, nil
}

// ListVenueIDs returns the ids of all stored venue documents.
func (dao *RedisVenueDAO) ListVenueIDs(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, VENUES_GEO_PLACE_MEMBER_PREFIX_V1+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list venue keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, VENUES_GEO_PLACE_MEMBER_PREFIX_V1))
	}
	return ids, nil
}
