package api

import (
	"net/http"

	"travel-itinerary-service/internal/api/handlers"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	synth *services.Synthesizer,
	geocoder ports.Geocoder,
	reverser ports.ReverseGeocoder,
	searcher ports.PlaceSearcher,
	corsOrigins []string,
) http.Handler {
	mux := http.NewServeMux()

	itineraryHandler := &handlers.ItineraryHandler{
		Synthesizer: synth,
		Geocoder:    geocoder,
	}
	mapsHandler := &handlers.MapsHandler{
		Geocoder: geocoder,
		Reverser: reverser,
		Searcher: searcher,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/v1/generate-itinerary", itineraryHandler.Generate)
	mux.HandleFunc("/api/v1/optimize-route", itineraryHandler.OptimizeRoute)
	mux.HandleFunc("/api/v1/enhance-itinerary", itineraryHandler.Enhance)
	mux.HandleFunc("/api/v1/budget-breakdown", itineraryHandler.BudgetBreakdown)
	mux.HandleFunc("/api/v1/recommendations", itineraryHandler.Recommendations)
	mux.HandleFunc("/api/v1/geocode", mapsHandler.Geocode)
	mux.HandleFunc("/api/v1/reverse-geocode", mapsHandler.ReverseGeocode)
	mux.HandleFunc("/api/v1/places/search", mapsHandler.SearchPlaces)
	mux.HandleFunc("/api/v1/places/details", mapsHandler.PlaceDetails)
	mux.HandleFunc("/api/v1/nearby-restaurants", mapsHandler.NearbyRestaurants)

	return loggingMiddleware(corsMiddleware(corsOrigins, mux))
}
