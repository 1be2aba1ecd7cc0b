package domain

// TripRequest carries the trip parameters a plan is generated from.
type TripRequest struct {
	City                string   `json:"city"`
	Budget              float64  `json:"budget"`
	Days                int      `json:"days"`
	Interests           []string `json:"interests,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	TravelStyle         string   `json:"travel_style,omitempty"`
	GroupSize           int      `json:"group_size,omitempty"`
}
