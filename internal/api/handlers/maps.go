package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

// MapsHandler exposes thin geocoding and place-lookup passthroughs. The
// optimization core only ever consumes the coordinates.
type MapsHandler struct {
	Geocoder ports.Geocoder
	Reverser ports.ReverseGeocoder
	Searcher ports.PlaceSearcher
}

func (h *MapsHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	place := strings.TrimSpace(r.URL.Query().Get("address"))
	if place == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	coords, err := h.Geocoder.Geocode(r.Context(), place)
	if err != nil {
		if errors.Is(err, ports.ErrPlaceNotFound) {
			writeError(w, r, http.StatusNotFound, "address not found")
			return
		}
		log.Printf("geocode failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Place: place, Coordinates: coords})
}

func (h *MapsHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	at, ok := parseCoordinates(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}

	addr, err := h.Reverser.ReverseGeocode(r.Context(), at)
	if err != nil {
		if errors.Is(err, ports.ErrPlaceNotFound) {
			writeError(w, r, http.StatusNotFound, "no address found for coordinates")
			return
		}
		log.Printf("reverse geocode failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReverseGeocodeResponse{
		Coordinates:      at,
		FormattedAddress: addr,
	})
}

func (h *MapsHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, r, http.StatusBadRequest, "query is required")
		return
	}

	limit := parseIntDefault(r.URL.Query().Get("limit"), 10)
	if limit < 1 || limit > 50 {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
		return
	}

	found, err := h.Searcher.SearchPlaces(r.Context(), query, limit)
	if err != nil {
		log.Printf("search places failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SearchPlacesResponse{
		Query:        query,
		Results:      placesToDTO(found),
		TotalResults: len(found),
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *MapsHandler) PlaceDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	placeID := strings.TrimSpace(r.URL.Query().Get("place_id"))
	if placeID == "" {
		writeError(w, r, http.StatusBadRequest, "place_id is required")
		return
	}

	detail, err := h.Searcher.PlaceDetails(r.Context(), placeID)
	if err != nil {
		if errors.Is(err, ports.ErrPlaceNotFound) {
			writeError(w, r, http.StatusNotFound, "place not found")
			return
		}
		log.Printf("place details failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlaceDetailsResponse{
		PlaceResponse: dto.PlaceResponse{
			PlaceID:     detail.PlaceID,
			Name:        detail.Name,
			Address:     detail.Address,
			Rating:      detail.Rating,
			PriceLevel:  detail.PriceLevel,
			Coordinates: detail.Coordinates,
		},
		Types:        detail.Types,
		Website:      detail.Website,
		PhoneNumber:  detail.PhoneNumber,
		OpeningHours: detail.OpeningHours,
	})
}

func (h *MapsHandler) NearbyRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	at, ok := parseCoordinates(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}

	radius := parseIntDefault(r.URL.Query().Get("radius"), 5000)
	if radius < 1 || radius > 50000 {
		writeError(w, r, http.StatusBadRequest, "radius must be between 1 and 50000 meters")
		return
	}

	priceLevel := -1
	if raw := r.URL.Query().Get("price_level"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 4 {
			writeError(w, r, http.StatusBadRequest, "price_level must be between 0 and 4")
			return
		}
		priceLevel = v
	}

	found, err := h.Searcher.NearbyRestaurants(r.Context(), at, radius, priceLevel)
	if err != nil {
		log.Printf("nearby restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NearbyRestaurantsResponse{
		Location:     at,
		RadiusMeters: radius,
		Restaurants:  placesToDTO(found),
		TotalResults: len(found),
	})
}

func placesToDTO(found []ports.Place) []dto.PlaceResponse {
	out := make([]dto.PlaceResponse, 0, len(found))
	for _, p := range found {
		out = append(out, dto.PlaceResponse{
			PlaceID:     p.PlaceID,
			Name:        p.Name,
			Address:     p.Address,
			Rating:      p.Rating,
			PriceLevel:  p.PriceLevel,
			Coordinates: p.Coordinates,
		})
	}
	return out
}

// parseCoordinates reads required lat/lng query parameters and checks
// geographic bounds.
func parseCoordinates(r *http.Request) (domain.Coordinates, bool) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		return domain.Coordinates{}, false
	}

	at := domain.Coordinates{Lat: lat, Lng: lng}
	return at, at.InRange()
}

func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseFloatDefault(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
