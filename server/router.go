package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// VenueRoutes is the set of handlers the router mounts.
type VenueRoutes interface {
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	GetVenue(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler VenueRoutes
	router       *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler VenueRoutes,
	router *mux.Router) *Router {
	return &Router{
		venueHandler: venueHandler,
		router:       router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	r.router.HandleFunc("/v1/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}", r.venueHandler.GetVenue).Methods("GET")

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
}
