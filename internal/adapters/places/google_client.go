package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
	"travel-itinerary-service/internal/ports"
)

// GoogleMapsClient implements the Geocoder, ReverseGeocoder, and
// PlaceSearcher ports using the Google Maps web services.
//
// It coordinates:
//   - Place-name normalization
//   - An in-process TTL memo in front of an optional persistent cache
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type GoogleMapsClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	memo    *gocache.Cache
	store   ports.GeocodeCache
}

const memoTTL = 12 * time.Hour

// NewGoogleMapsClient builds a client. store may be nil, in which case
// only the in-process memo is consulted.
func NewGoogleMapsClient(apiKey string, store ports.GeocodeCache) (*GoogleMapsClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps client: api key must be non-empty")
	}

	return &GoogleMapsClient{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api",
		memo:    gocache.New(memoTTL, memoTTL),
		store:   store,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleMapsClient) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a place name to coordinates, checking the memo and the
// persistent cache before issuing an external call.
func (g *GoogleMapsClient) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	norm := g.normalize(place)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: place must be non-empty")
	}

	if v, ok := g.memo.Get(norm); ok {
		return v.(domain.Coordinates), nil
	}

	if g.store != nil {
		hits, err := g.store.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if c, ok := hits[norm]; ok {
			g.memo.SetDefault(norm, c)
			return c, nil
		}
	}

	endpoint := g.baseURL + "/geocode/json"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("address", norm)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if decoded.Status == "ZERO_RESULTS" || len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, ports.ErrPlaceNotFound)
	}
	if decoded.Status != "OK" {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: unexpected status %q", norm, decoded.Status)
	}

	loc := decoded.Results[0].Geometry.Location
	coords := domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}
	if !coords.InRange() {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: coordinates out of range", norm)
	}

	g.memo.SetDefault(norm, coords)
	if g.store != nil {
		if err := g.store.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}

// ReverseGeocode resolves coordinates to the nearest formatted address.
func (g *GoogleMapsClient) ReverseGeocode(ctx context.Context, at domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "maps.ReverseGeocode")(&err)

	if !at.InRange() {
		return "", fmt.Errorf("reverse geocode (%.4f, %.4f): coordinates out of range", at.Lat, at.Lng)
	}

	endpoint := g.baseURL + "/geocode/json"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("latlng", fmt.Sprintf("%f,%f", at.Lat, at.Lng))
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode (%.4f, %.4f): %w", at.Lat, at.Lng, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("reverse geocode (%.4f, %.4f): decode response: %w", at.Lat, at.Lng, err)
	}

	if decoded.Status == "ZERO_RESULTS" || len(decoded.Results) == 0 {
		return "", fmt.Errorf("reverse geocode (%.4f, %.4f): %w", at.Lat, at.Lng, ports.ErrPlaceNotFound)
	}
	if decoded.Status != "OK" {
		return "", fmt.Errorf("reverse geocode (%.4f, %.4f): unexpected status %q", at.Lat, at.Lng, decoded.Status)
	}

	return decoded.Results[0].FormattedAddress, nil
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Vicinity         string  `json:"vicinity"`
		Rating           float64 `json:"rating"`
		PriceLevel       int     `json:"price_level"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchPlaces runs a free-text place search and returns up to limit
// results.
func (g *GoogleMapsClient) SearchPlaces(ctx context.Context, query string, limit int) (_ []ports.Place, err error) {
	defer obs.Time(ctx, "maps.SearchPlaces")(&err)

	norm := g.normalize(query)
	if norm == "" {
		return nil, errors.New("search places: query must be non-empty")
	}
	if limit < 1 {
		limit = 10
	}

	endpoint := g.baseURL + "/place/textsearch/json"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("query", norm)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search places %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("search places %q: decode response: %w", norm, err)
	}

	if decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("search places %q: unexpected status %q", norm, decoded.Status)
	}

	out := make([]ports.Place, 0, limit)
	for _, r := range decoded.Results {
		if len(out) == limit {
			break
		}
		out = append(out, ports.Place{
			PlaceID:    r.PlaceID,
			Name:       r.Name,
			Address:    r.FormattedAddress,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Coordinates: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}

	return out, nil
}

type placeDetailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name                 string   `json:"name"`
		FormattedAddress     string   `json:"formatted_address"`
		Rating               float64  `json:"rating"`
		PriceLevel           int      `json:"price_level"`
		Types                []string `json:"types"`
		Website              string   `json:"website"`
		FormattedPhoneNumber string   `json:"formatted_phone_number"`
		OpeningHours         struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

const detailFields = "name,formatted_address,geometry,rating,types,price_level,opening_hours,website,formatted_phone_number"

// PlaceDetails resolves a place id to its full detail record.
func (g *GoogleMapsClient) PlaceDetails(ctx context.Context, placeID string) (_ ports.PlaceDetail, err error) {
	defer obs.Time(ctx, "maps.PlaceDetails")(&err)

	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return ports.PlaceDetail{}, errors.New("place details: place id must be non-empty")
	}

	endpoint := g.baseURL + "/place/details/json"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("place_id", placeID)
		q.Set("fields", detailFields)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.PlaceDetail{}, fmt.Errorf("place details %q: %w", placeID, err)
	}
	defer resp.Body.Close()

	var decoded placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.PlaceDetail{}, fmt.Errorf("place details %q: decode response: %w", placeID, err)
	}

	switch decoded.Status {
	case "OK":
	case "NOT_FOUND", "ZERO_RESULTS", "INVALID_REQUEST":
		return ports.PlaceDetail{}, fmt.Errorf("place details %q: %w", placeID, ports.ErrPlaceNotFound)
	default:
		return ports.PlaceDetail{}, fmt.Errorf("place details %q: unexpected status %q", placeID, decoded.Status)
	}

	r := decoded.Result
	return ports.PlaceDetail{
		Place: ports.Place{
			PlaceID:    placeID,
			Name:       r.Name,
			Address:    r.FormattedAddress,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Coordinates: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		},
		Types:        r.Types,
		Website:      r.Website,
		PhoneNumber:  r.FormattedPhoneNumber,
		OpeningHours: r.OpeningHours.WeekdayText,
	}, nil
}

// NearbyRestaurants lists restaurants around the coordinates. A negative
// priceLevel disables price filtering.
func (g *GoogleMapsClient) NearbyRestaurants(
	ctx context.Context,
	at domain.Coordinates,
	radiusMeters, priceLevel int,
) (_ []ports.Place, err error) {
	defer obs.Time(ctx, "maps.NearbyRestaurants")(&err)

	if !at.InRange() {
		return nil, fmt.Errorf("nearby restaurants (%.4f, %.4f): coordinates out of range", at.Lat, at.Lng)
	}
	if radiusMeters < 1 {
		radiusMeters = 5000
	}

	endpoint := g.baseURL + "/place/nearbysearch/json"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("location", fmt.Sprintf("%f,%f", at.Lat, at.Lng))
		q.Set("radius", fmt.Sprint(radiusMeters))
		q.Set("type", "restaurant")
		if priceLevel >= 0 {
			q.Set("minprice", fmt.Sprint(priceLevel))
			q.Set("maxprice", fmt.Sprint(priceLevel))
		}
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("nearby restaurants (%.4f, %.4f): %w", at.Lat, at.Lng, err)
	}
	defer resp.Body.Close()

	var decoded textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("nearby restaurants (%.4f, %.4f): decode response: %w", at.Lat, at.Lng, err)
	}

	if decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby restaurants (%.4f, %.4f): unexpected status %q", at.Lat, at.Lng, decoded.Status)
	}

	out := make([]ports.Place, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		// Nearby search reports "vicinity" instead of a formatted address.
		addr := r.FormattedAddress
		if addr == "" {
			addr = r.Vicinity
		}
		out = append(out, ports.Place{
			PlaceID:    r.PlaceID,
			Name:       r.Name,
			Address:    addr,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Coordinates: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}

	return out, nil
}
