package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the methods available in the RedisClient
type RedisClient interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	// GetLocationsWithinRadius returns the JSON of every member within radius km.
	GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radius float64) ([]string, error)
	Ping(ctx context.Context) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, key string) error
}
