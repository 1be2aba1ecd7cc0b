package places

import (
	"context"
	"fmt"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

// Map-backed Geocoder for tests. Keys are matched after whitespace
// normalization, the same as the real client.
type MockGeocoder struct {
	m   map[string]domain.Coordinates
	rev map[domain.Coordinates]string
}

func NewMockGeocoder(entries map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{m: entries, rev: map[domain.Coordinates]string{}}
}

// AddReverse registers a reverse lookup answer for exact coordinates.
func (p *MockGeocoder) AddReverse(at domain.Coordinates, address string) {
	p.rev[at] = address
}

func (p *MockGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	c, ok := p.m[place]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocoder: %q: %w", place, ports.ErrPlaceNotFound)
	}
	return c, nil
}

func (p *MockGeocoder) ReverseGeocode(ctx context.Context, at domain.Coordinates) (string, error) {
	addr, ok := p.rev[at]
	if !ok {
		return "", fmt.Errorf("mock geocoder: (%.4f, %.4f): %w", at.Lat, at.Lng, ports.ErrPlaceNotFound)
	}
	return addr, nil
}
