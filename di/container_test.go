package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-scraper/api/places"
	"venue-scraper/config"
	"venue-scraper/logging"
)

func TestNewContainer_ProdWithoutRedis(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey, cfg.Location, cfg.Query = "key", "1,2", "bars"

	c, err := NewContainer(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &places.PlacesApiClient{}, c.PlacesAPI)
	assert.NotNil(t, c.ScraperService)
	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RedisVenueDao)
}

func TestNewContainer_Mock(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.ENV_MOCK

	c, err := NewContainer(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &places.PlacesApiClientMock{}, c.PlacesAPI)
}

func TestNewContainer_UnreachableRedis(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey, cfg.Location, cfg.Query = "key", "1,2", "bars"
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := NewContainer(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}

func TestNewServerContainer_Mock(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.ENV_MOCK

	c, err := NewServerContainer(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.RedisVenueDao)
	assert.NotNil(t, c.VenuesHttpServer)
}

func TestContainer_MockScrapeEndToEnd(t *testing.T) {
	root, err := filepath.Abs("..")
	require.NoError(t, err)
	t.Setenv("PROJECT_ROOT", root)

	out := t.TempDir()
	cfg := config.Default()
	cfg.Env = config.ENV_MOCK
	cfg.Location, cfg.Query = "51.5072,-0.1276", "bars"
	cfg.OutputDir = out
	cfg.ImageDir = filepath.Join(out, "images")
	cfg.RenderMap = true

	c, err := NewContainer(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer c.Close()

	report, err := c.ScraperService.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Venues, 3)
	assert.Len(t, report.Images, 2)
	assert.Len(t, report.OpeningHours, 11)
	assert.FileExists(t, filepath.Join(out, "bars_venues.csv"))
	assert.FileExists(t, filepath.Join(out, "bars_venue_images.csv"))
	assert.FileExists(t, filepath.Join(out, "bars_venue_opening_hours.csv"))
	assert.FileExists(t, filepath.Join(out, "bars_venues_map.html"))

	for _, img := range report.Images {
		assert.FileExists(t, filepath.Join(cfg.ImageDir, img.ImageURL))
	}
}
