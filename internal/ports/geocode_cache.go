package ports

import (
	"context"

	"travel-itinerary-service/internal/domain"
)

// Port: a persistent place -> coordinates cache shared across requests.
// Missing entries are simply absent from the GetMany result, never an error.
type GeocodeCache interface {
	// Fetch cached coordinates for the given place names.
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
	// Store place -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
