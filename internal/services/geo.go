package services

import (
	"errors"
	"fmt"
	"math"

	"travel-itinerary-service/internal/domain"
)

// Earth's mean radius in kilometers.
const earthRadiusKm = 6371.0

// Assumed average speed between stops, in km/h. Travel time estimates are
// a linear approximation on top of great-circle distance, not a call to a
// routing API.
const averageSpeedKmh = 30.0

// Reported when a latitude/longitude pair is outside valid ranges.
var ErrInvalidCoordinate = errors.New("coordinate out of range")

// HaversineKm returns the great-circle distance between two coordinate
// pairs in kilometers, using the haversine formula. This is the shared
// distance ground truth for every other component; none of them computes
// distance on its own.
//
// Out-of-range input is rejected with ErrInvalidCoordinate. Callers are
// expected to filter out absent coordinates before invoking.
func HaversineKm(a, b domain.Coordinates) (float64, error) {
	if !a.InRange() {
		return 0, fmt.Errorf("haversine: origin (%.4f, %.4f): %w", a.Lat, a.Lng, ErrInvalidCoordinate)
	}
	if !b.InRange() {
		return 0, fmt.Errorf("haversine: destination (%.4f, %.4f): %w", b.Lat, b.Lng, ErrInvalidCoordinate)
	}

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return earthRadiusKm * c, nil
}

// TravelTimeMinutes estimates travel time for a distance at the assumed
// average speed, truncated to whole minutes.
func TravelTimeMinutes(distanceKm float64) int {
	return int(distanceKm / averageSpeedKmh * 60)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
