package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Places API
const PLACES_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api/place"
const DEFAULT_SEARCH_RADIUS_METERS = 5600
const DEFAULT_MAX_RESULTS = 10
const DEFAULT_IMAGE_MAX_WIDTH = 1280
const DEFAULT_HTTP_TIMEOUT = 10 * time.Second

// Next page tokens are rejected upstream until a couple of seconds after they are issued.
const DEFAULT_PAGE_TOKEN_DELAY = 2 * time.Second

// Output
const DEFAULT_IMAGE_DIR = "images"
const DEFAULT_OUTPUT_DIR = "."

// Redis Config
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Server
const DEFAULT_SERVER_ADDR = ":8080"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SEARCH_PLACES_RESPONSE_RESOURCE = "search_places_response.json"
const PLACE_DETAILS_RESPONSE_RESOURCE = "place_details_response.json"
const PLACE_PHOTO_RESOURCE = "place_photo.jpg"

const (
	ENV_PROD = "prod"
	ENV_MOCK = "mock"
)

// UnmatchedHoursPolicy decides what happens to an opening-hours line that does
// not look like "Day: h:mm AM – h:mm PM".
type UnmatchedHoursPolicy string

const (
	HoursSkip UnmatchedHoursPolicy = "skip"
	HoursWarn UnmatchedHoursPolicy = "warn"
	HoursFail UnmatchedHoursPolicy = "fail"
)

// DayIndexMode decides where the week_day of an opening-hours record comes from.
type DayIndexMode string

const (
	// DayIndexPosition uses the line's position in the upstream list.
	DayIndexPosition DayIndexMode = "position"
	// DayIndexWeekday parses the day label, Monday=0 through Sunday=6.
	DayIndexWeekday DayIndexMode = "weekday"
)

var ErrMissingEnv = errors.New("missing required env var")

// Config is built once at startup and handed to every component.
type Config struct {
	Env string

	APIKey   string
	Location string
	Query    string

	RadiusMeters   int
	MaxResults     int
	EndpointBase   string
	HTTPTimeout    time.Duration
	PageTokenDelay time.Duration

	ImageDir      string
	ImageMaxWidth int
	OutputDir     string

	UnmatchedHours   UnmatchedHoursPolicy
	DayIndex         DayIndexMode
	SkipFailedVenues bool
	RenderMap        bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ServerAddr string
}

// Default returns a Config with every optional value set.
func Default() Config {
	return Config{
		Env:            ENV_PROD,
		RadiusMeters:   DEFAULT_SEARCH_RADIUS_METERS,
		MaxResults:     DEFAULT_MAX_RESULTS,
		EndpointBase:   PLACES_ENDPOINT_BASE,
		HTTPTimeout:    DEFAULT_HTTP_TIMEOUT,
		PageTokenDelay: DEFAULT_PAGE_TOKEN_DELAY,
		ImageDir:       DEFAULT_IMAGE_DIR,
		ImageMaxWidth:  DEFAULT_IMAGE_MAX_WIDTH,
		OutputDir:      DEFAULT_OUTPUT_DIR,
		UnmatchedHours: HoursSkip,
		DayIndex:       DayIndexPosition,
		RedisPassword:  REDIS_DB_PASSWORD,
		RedisDB:        REDIS_DB,
		ServerAddr:     DEFAULT_SERVER_ADDR,
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadServer is Load for the venue API server. It only needs a store to read
// from, so the scrape inputs are not required.
func LoadServer() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	cfg := FromEnv()
	if err := cfg.ValidateServer(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv loads .env (or the given files) into the environment. A missing
// file is fine since the environment may already be populated; a malformed one
// is an error.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// FromEnv builds a Config from the environment without validating it.
func FromEnv() Config {
	d := Default()
	return Config{
		Env:              GetEnvString("APP_ENV", d.Env),
		APIKey:           os.Getenv("GOOGLE_PLACES_API_KEY"),
		Location:         os.Getenv("LOCATION"),
		Query:            os.Getenv("QUERY"),
		RadiusMeters:     GetEnvInt("SEARCH_RADIUS", d.RadiusMeters),
		MaxResults:       GetEnvInt("MAX_RESULTS", d.MaxResults),
		EndpointBase:     GetEnvString("PLACES_ENDPOINT_BASE", d.EndpointBase),
		HTTPTimeout:      GetEnvDuration("HTTP_TIMEOUT", d.HTTPTimeout),
		PageTokenDelay:   GetEnvDuration("PAGE_TOKEN_DELAY", d.PageTokenDelay),
		ImageDir:         GetEnvString("IMAGE_DIR", d.ImageDir),
		ImageMaxWidth:    GetEnvInt("IMAGE_MAX_WIDTH", d.ImageMaxWidth),
		OutputDir:        GetEnvString("OUTPUT_DIR", d.OutputDir),
		UnmatchedHours:   UnmatchedHoursPolicy(strings.ToLower(GetEnvString("HOURS_UNMATCHED_POLICY", string(d.UnmatchedHours)))),
		DayIndex:         DayIndexMode(strings.ToLower(GetEnvString("DAY_INDEX_MODE", string(d.DayIndex)))),
		SkipFailedVenues: GetEnvBool("SKIP_FAILED_VENUES", d.SkipFailedVenues),
		RenderMap:        GetEnvBool("RENDER_MAP", d.RenderMap),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    GetEnvString("REDIS_PASSWORD", d.RedisPassword),
		RedisDB:          GetEnvInt("REDIS_DB", d.RedisDB),
		ServerAddr:       GetEnvString("SERVER_ADDR", d.ServerAddr),
	}
}

// Validate checks the values the scrape pipeline cannot run without.
func (c Config) Validate() error {
	var missing []string
	if c.APIKey == "" && c.Env != ENV_MOCK {
		missing = append(missing, "GOOGLE_PLACES_API_KEY")
	}
	if c.Location == "" {
		missing = append(missing, "LOCATION")
	}
	if c.Query == "" {
		missing = append(missing, "QUERY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	switch c.UnmatchedHours {
	case HoursSkip, HoursWarn, HoursFail:
	default:
		return fmt.Errorf("invalid HOURS_UNMATCHED_POLICY %q", c.UnmatchedHours)
	}
	switch c.DayIndex {
	case DayIndexPosition, DayIndexWeekday:
	default:
		return fmt.Errorf("invalid DAY_INDEX_MODE %q", c.DayIndex)
	}
	if c.Env != ENV_PROD && c.Env != ENV_MOCK {
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	return nil
}

// ValidateServer checks the values the venue API server needs. Outside mock
// mode it reads from Redis, so REDIS_ADDR is required.
func (c Config) ValidateServer() error {
	if c.Env != ENV_PROD && c.Env != ENV_MOCK {
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	if c.Env == ENV_PROD && c.RedisAddr == "" {
		return fmt.Errorf("%w: REDIS_ADDR", ErrMissingEnv)
	}
	return nil
}

// OutputFiles returns the three CSV paths for the configured query.
func (c Config) OutputFiles() (venues, images, hours string) {
	return filepath.Join(c.OutputDir, c.Query+"_venues.csv"),
		filepath.Join(c.OutputDir, c.Query+"_venue_images.csv"),
		filepath.Join(c.OutputDir, c.Query+"_venue_opening_hours.csv")
}

// MapFile is where the venue map is rendered when RenderMap is set.
func (c Config) MapFile() string {
	return filepath.Join(c.OutputDir, c.Query+"_venues_map.html")
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
