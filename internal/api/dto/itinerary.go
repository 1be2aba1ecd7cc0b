package dto

import (
	"time"

	"travel-itinerary-service/internal/domain"
)

type GenerateItineraryRequest struct {
	City                string   `json:"city"`
	Budget              float64  `json:"budget"`
	Days                int      `json:"days"`
	Interests           []string `json:"interests"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	TravelStyle         string   `json:"travel_style"`
	GroupSize           int      `json:"group_size"`
}

type RouteStopResponse struct {
	Name            string             `json:"name"`
	Kind            string             `json:"kind"`
	Slot            string             `json:"slot"`
	Coordinates     domain.Coordinates `json:"coordinates"`
	DurationMinutes int                `json:"duration_minutes"`
}

type RouteResponse struct {
	Day                int                 `json:"day"`
	Stops              []RouteStopResponse `json:"stops"`
	Unrouted           []string            `json:"unrouted,omitempty"`
	TotalTravelMinutes int                 `json:"total_travel_minutes"`
	TotalDistanceKm    float64             `json:"total_distance_km"`
}

type ItineraryResponse struct {
	ID              string          `json:"id"`
	City            string          `json:"city"`
	TotalBudget     float64         `json:"total_budget"`
	Days            int             `json:"days"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Itinerary       []*domain.Day   `json:"itinerary"`
	Routes          []RouteResponse `json:"routes"`
	Summary         string          `json:"summary"`
	TotalCost       float64         `json:"total_cost"`
	Savings         float64         `json:"savings"`
	Recommendations []string        `json:"recommendations"`
}

type OptimizeRouteRequest struct {
	Days []*domain.Day `json:"days"`
}

type OptimizeRouteResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type EnhanceItineraryRequest struct {
	Request domain.TripRequest `json:"request"`
	Days    []*domain.Day      `json:"days"`
}

type EnhanceItineraryResponse struct {
	Days []*domain.Day `json:"days"`
}

type BudgetBreakdownRequest struct {
	Days        []*domain.Day `json:"days"`
	TotalBudget float64       `json:"total_budget"`
}

type BudgetBreakdownResponse struct {
	ActivitiesCost     float64 `json:"activities_cost"`
	DiningCost         float64 `json:"dining_cost"`
	TransportationCost float64 `json:"transportation_cost"`
	TotalCost          float64 `json:"total_cost"`
	RemainingBudget    float64 `json:"remaining_budget"`
	CostPerDay         float64 `json:"cost_per_day"`
}

type RecommendationsResponse struct {
	City            string   `json:"city"`
	Budget          float64  `json:"budget"`
	Days            int      `json:"days"`
	Recommendations []string `json:"recommendations"`
}

// RouteFromDomain maps a derived route onto its wire shape.
func RouteFromDomain(r *domain.Route) RouteResponse {
	stops := make([]RouteStopResponse, 0, len(r.Stops))
	for _, s := range r.Stops {
		stops = append(stops, RouteStopResponse{
			Name:            s.Name,
			Kind:            s.Kind,
			Slot:            s.Slot,
			Coordinates:     s.Coordinates,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return RouteResponse{
		Day:                r.Day,
		Stops:              stops,
		Unrouted:           r.Unrouted,
		TotalTravelMinutes: r.TotalTravelMinutes,
		TotalDistanceKm:    r.TotalDistanceKm,
	}
}
