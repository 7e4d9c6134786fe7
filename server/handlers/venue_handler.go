package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"venue-scraper/dao/redis"
	"venue-scraper/logging"
	"venue-scraper/models/venue"
)

const (
	LAT_QUERY_ARG     = "lat"
	LON_QUERY_ARG     = "lon"
	RADIUS_QUERY_ARG  = "radius"
	VERBOSE_QUERY_ARG = "verbose"

	VENUE_ID_PATH_VAR = "id"
)

// VenueStore is the read side of the venue geo index.
type VenueStore interface {
	GetNearbyVenues(ctx context.Context, lat, lon, radius float64) ([]venue.VenueDocument, error)
	GetVenueDocument(ctx context.Context, venueID string) (*venue.VenueDocument, error)
}

// MinifiedVenue is the small form returned when verbose=false.
type MinifiedVenue struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Address          string   `json:"address"`
	PriceLevel       string   `json:"price_level"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Images           []string `json:"images"`
}

type VenueHandler struct {
	store  VenueStore
	logger *slog.Logger
}

func NewVenueHandler(store VenueStore, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{store: store, logger: logging.Component(logger, "VenueHandler")}
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat=&lon=&radius=&verbose=
// radius is in kilometres.
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, verbose, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	docs, err := h.store.GetNearbyVenues(r.Context(), lat, lon, radius)
	if err != nil {
		h.logger.Error("loading nearby venues failed", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// most reviewed first
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Venue.UserRatingsTotal > docs[j].Venue.UserRatingsTotal
	})

	var result interface{} = docs
	if !verbose {
		result = minify(docs)
	}
	h.writeJSON(w, http.StatusOK, result)
}

// GetVenue handles GET /v1/venues/{id}.
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[VENUE_ID_PATH_VAR]
	doc, err := h.store.GetVenueDocument(r.Context(), id)
	if errors.Is(err, redis.ErrVenueNotFound) {
		http.Error(w, "Venue not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("loading venue failed", slog.String("venue_id", id), slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("ping")
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (
	lat, lon, radius float64, verbose bool, ok bool,
) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil || lat < -90 || lat > 90 {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil || lon < -180 || lon > 180 {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil || radius <= 0 {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	if v := vals.Get(VERBOSE_QUERY_ARG); v != "" {
		verbose, _ = strconv.ParseBool(v)
	}
	ok = true
	return
}

func (h *VenueHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("encoding response failed", slog.Any("error", err))
	}
}

func minify(docs []venue.VenueDocument) []MinifiedVenue {
	out := make([]MinifiedVenue, 0, len(docs))
	for _, d := range docs {
		images := make([]string, 0, len(d.Images))
		for _, img := range d.Images {
			images = append(images, img.ImageURL)
		}
		out = append(out, MinifiedVenue{
			ID:               d.Venue.ID,
			Name:             d.Venue.Name,
			Slug:             d.Venue.Slug,
			Address:          d.Venue.Address,
			PriceLevel:       d.Venue.PriceLevel,
			UserRatingsTotal: d.Venue.UserRatingsTotal,
			Lat:              d.Lat,
			Lng:              d.Lng,
			Images:           images,
		})
	}
	return out
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}
