package di

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"venue-scraper/api"
	"venue-scraper/api/places"
	"venue-scraper/config"
	"venue-scraper/dao/redis"
	"venue-scraper/db"
	"venue-scraper/logging"
	"venue-scraper/server"
	"venue-scraper/server/handlers"
	services "venue-scraper/service"
	"venue-scraper/util"
)

// Container holds all application dependencies.
type Container struct {
	Config           config.Config
	PlacesAPI        places.PlacesAPI
	ImageDownloader  *services.ImageDownloader
	RecordBuilder    *services.RecordBuilder
	CsvWriter        *util.CsvWriter
	RedisClient      db.RedisClient
	RedisVenueDao    *redis.RedisVenueDAO
	ScraperService   *services.ScraperService
	VenueHandler     *handlers.VenueHandler
	MuxRouter        *mux.Router
	Router           *server.Router
	VenuesHttpServer *server.VenuesHttpServer

	closers []func() error
	logger  *slog.Logger
}

// NewContainer wires the scrape pipeline. The Redis export is only wired
// when REDIS_ADDR is set.
func NewContainer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, logger: logging.Component(logger, "Container")}
	c.logger.Info("initializing container", slog.String("env", cfg.Env))

	c.PlacesAPI = newPlacesAPI(cfg, c.logger)
	c.ImageDownloader = services.NewImageDownloader(c.PlacesAPI, cfg.ImageDir, cfg.ImageMaxWidth)
	c.RecordBuilder = services.NewRecordBuilder(c.ImageDownloader, cfg.UnmatchedHours, cfg.DayIndex, logger)
	c.CsvWriter = util.NewCsvWriter()

	// A nil *RedisVenueDAO must not end up inside the VenueSink interface.
	var sink services.VenueSink
	if cfg.RedisAddr != "" {
		if err := c.initRedis(ctx, cfg, logger); err != nil {
			c.Close()
			return nil, err
		}
		sink = c.RedisVenueDao
	}

	var renderMap services.MapRenderer
	if cfg.RenderMap {
		renderMap = util.PlotVenues
	}

	c.ScraperService = services.NewScraperService(cfg, c.PlacesAPI, c.RecordBuilder, c.CsvWriter, sink, renderMap, logger)
	return c, nil
}

// NewServerContainer wires the venue API server. In mock mode the store is the
// in-memory Redis mock.
func NewServerContainer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, logger: logging.Component(logger, "Container")}
	c.logger.Info("initializing server container", slog.String("env", cfg.Env))

	if cfg.Env == config.ENV_MOCK && cfg.RedisAddr == "" {
		c.logger.Info("using mock redis client")
		c.RedisClient = db.NewMockRedisClient()
		c.RedisVenueDao = redis.NewRedisVenueDAO(c.RedisClient)
	} else if err := c.initRedis(ctx, cfg, logger); err != nil {
		c.Close()
		return nil, err
	}

	c.VenueHandler = handlers.NewVenueHandler(c.RedisVenueDao, logger)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.VenueHandler, c.MuxRouter)
	c.VenuesHttpServer = server.NewVenuesHttpServer(c.Router, c.MuxRouter, cfg.ServerAddr, logger)
	return c, nil
}

func newPlacesAPI(cfg config.Config, logger *slog.Logger) places.PlacesAPI {
	if cfg.Env == config.ENV_MOCK {
		logger.Info("using mock places api")
		return places.NewPlacesApiClientMock()
	}

	logger.Info("using prod places api", slog.String("endpoint", cfg.EndpointBase))
	httpClient := api.NewHTTPClientWithTimeout(cfg.EndpointBase, cfg.HTTPTimeout)
	client := places.NewPlacesApiClient(httpClient)
	client.SetCredentials(cfg.APIKey)
	client.SetPageTokenDelay(cfg.PageTokenDelay)
	return client
}

func (c *Container) initRedis(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	redisClient := db.NewGeoRedisClient(redisInternalClient, logger)
	c.closers = append(c.closers, redisClient.Close)

	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	c.RedisClient = redisClient
	c.RedisVenueDao = redis.NewRedisVenueDAO(redisClient)
	return nil
}

// Close releases external connections.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Warn("closing dependency failed", slog.Any("error", err))
		}
	}
	c.closers = nil
}
