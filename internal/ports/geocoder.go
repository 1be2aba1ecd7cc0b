package ports

import (
	"context"
	"errors"

	"travel-itinerary-service/internal/domain"
)

// Returned by a Geocoder when a place name resolves to nothing.
var ErrPlaceNotFound = errors.New("place not found")

// Contract for resolving a named place to coordinates. The optimization
// core treats the mapping collaborator strictly as a coordinate source.
type Geocoder interface {
	// Return coordinates for a place name.
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}

// Contract for resolving coordinates back to a street address.
type ReverseGeocoder interface {
	// Return the formatted address nearest to the coordinates.
	ReverseGeocode(ctx context.Context, at domain.Coordinates) (string, error)
}

// A place returned by text or nearby search.
type Place struct {
	PlaceID     string
	Name        string
	Address     string
	Rating      float64
	PriceLevel  int
	Coordinates domain.Coordinates
}

// PlaceDetail carries the extra fields only a details lookup returns.
type PlaceDetail struct {
	Place
	Types        []string
	Website      string
	PhoneNumber  string
	OpeningHours []string
}

// Contract for place lookups beyond plain geocoding.
type PlaceSearcher interface {
	// Return up to limit places matching the query.
	SearchPlaces(ctx context.Context, query string, limit int) ([]Place, error)
	// Return full details for a known place id.
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetail, error)
	// Return restaurants within radiusMeters of the coordinates.
	// priceLevel filters on the provider's 0-4 scale; negative disables it.
	NearbyRestaurants(ctx context.Context, at domain.Coordinates, radiusMeters, priceLevel int) ([]Place, error)
}
