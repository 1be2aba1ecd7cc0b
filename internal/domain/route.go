package domain

// A single stop in a day's optimized visiting order.
type RouteStop struct {
	Name            string      `json:"name"`
	Kind            string      `json:"kind"` // activity or dining
	Slot            string      `json:"slot"`
	Coordinates     Coordinates `json:"coordinates"`
	DurationMinutes int         `json:"duration_minutes"`
}

// Route is the derived visiting order for one day's items, along with
// cumulative travel metrics. It is the output of the route optimizer and
// describes ordering only; the day's own item lists are never reordered
// or truncated. A Route is recomputed whenever the underlying day
// changes and is never mutated in place.
type Route struct {
	Day                int         `json:"day"`
	Stops              []RouteStop `json:"stops"`
	Unrouted           []string    `json:"unrouted,omitempty"`
	TotalTravelMinutes int         `json:"total_travel_minutes"`
	TotalDistanceKm    float64     `json:"total_distance_km"`
}
