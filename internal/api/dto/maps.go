package dto

import "travel-itinerary-service/internal/domain"

type GeocodeResponse struct {
	Place       string             `json:"place"`
	Coordinates domain.Coordinates `json:"coordinates"`
}

type ReverseGeocodeResponse struct {
	Coordinates      domain.Coordinates `json:"coordinates"`
	FormattedAddress string             `json:"formatted_address"`
}

type PlaceResponse struct {
	PlaceID     string             `json:"place_id,omitempty"`
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Rating      float64            `json:"rating,omitempty"`
	PriceLevel  int                `json:"price_level,omitempty"`
	Coordinates domain.Coordinates `json:"coordinates"`
}

type SearchPlacesResponse struct {
	Query        string          `json:"query"`
	Results      []PlaceResponse `json:"results"`
	TotalResults int             `json:"total_results"`
}

type PlaceDetailsResponse struct {
	PlaceResponse
	Types        []string `json:"types,omitempty"`
	Website      string   `json:"website,omitempty"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	OpeningHours []string `json:"opening_hours,omitempty"`
}

type NearbyRestaurantsResponse struct {
	Location     domain.Coordinates `json:"location"`
	RadiusMeters int                `json:"radius_meters"`
	Restaurants  []PlaceResponse    `json:"restaurants"`
	TotalResults int                `json:"total_results"`
}
