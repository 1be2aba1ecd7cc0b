package domain

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InRange reports whether both components are within valid geographic
// bounds: latitude [-90, 90], longitude [-180, 180].
func (c Coordinates) InRange() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
