package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"travel-itinerary-service/internal/adapters/generation"
	"travel-itinerary-service/internal/adapters/places"
	"travel-itinerary-service/internal/domain"
)

// Three days, two activities + one dining entry each, every item priced
// above floor. Costs sum to $1200 against a $900 budget.
const threeDayJSON = `[
  {"day": 1, "summary": "Day one", "activities": [
    {"time": "morning", "place": "Louvre Museum", "description": "", "cost": 150},
    {"time": "afternoon", "place": "Eiffel Tower", "description": "", "cost": 100}
  ], "dining": [
    {"name": "Bistro One", "cuisine": "French", "price_per_person": 150}
  ]},
  {"day": 2, "summary": "Day two", "activities": [
    {"time": "morning", "place": "Musee d'Orsay", "description": "", "cost": 150},
    {"time": "afternoon", "place": "Notre-Dame", "description": "", "cost": 100}
  ], "dining": [
    {"name": "Bistro Two", "cuisine": "French", "price_per_person": 150}
  ]},
  {"day": 3, "summary": "Day three", "activities": [
    {"time": "morning", "place": "Arc de Triomphe", "description": "", "cost": 150},
    {"time": "afternoon", "place": "Sainte-Chapelle", "description": "", "cost": 100}
  ], "dining": [
    {"name": "Bistro Three", "cuisine": "French", "price_per_person": 150}
  ]}
]`

func parisGeocoder() *places.MockGeocoder {
	return places.NewMockGeocoder(map[string]domain.Coordinates{
		"Louvre Museum, Paris":   {Lat: 48.8606, Lng: 2.3376},
		"Eiffel Tower, Paris":    {Lat: 48.8584, Lng: 2.2945},
		"Musee d'Orsay, Paris":   {Lat: 48.8600, Lng: 2.3266},
		"Notre-Dame, Paris":      {Lat: 48.8530, Lng: 2.3499},
		"Arc de Triomphe, Paris": {Lat: 48.8738, Lng: 2.2950},
		// Sainte-Chapelle and the bistros stay unresolved on purpose.
	})
}

func TestGeneratePlanEndToEnd(t *testing.T) {
	gen := &generation.MockGenerator{Responses: []string{"a draft", threeDayJSON}}
	synth := NewSynthesizer(gen)

	req := domain.TripRequest{City: "Paris", Budget: 900, Days: 3, GroupSize: 2}

	result, err := GeneratePlan(context.Background(), req, synth, parisGeocoder())
	require.NoError(t, err)

	plan := result.Plan
	require.NotEmpty(t, plan.ID)
	require.Equal(t, "Paris", plan.City)
	require.Equal(t, 900.0, plan.TotalBudget)
	require.Len(t, plan.Days, 3)
	require.Len(t, result.Routes, 3)
	require.NotEmpty(t, plan.Recommendations)

	// The single shrink pass improves the total without inventing costs.
	total := plan.TotalCost()
	require.LessOrEqual(t, total, 1200.0)
	// 9 items, floors $5/$10: post-floor minimum is far below; the exact
	// factor here is 1 - (300/1200)*0.5 = 0.875.
	require.InDelta(t, 1050.0, total, 1e-9)
	require.InDelta(t, 0.0, plan.Savings(), 1e-9) // still over budget

	for _, day := range plan.Days {
		for _, a := range day.Activities {
			require.GreaterOrEqual(t, *a.Cost, minActivityCost)
		}
		for _, d := range day.Dining {
			require.GreaterOrEqual(t, *d.PricePerPerson, minDiningPrice)
		}
	}
}

func TestGeneratePlanRoutesCoverGeocodedItems(t *testing.T) {
	gen := &generation.MockGenerator{Responses: []string{"a draft", threeDayJSON}}
	synth := NewSynthesizer(gen)

	req := domain.TripRequest{City: "Paris", Budget: 900, Days: 3}

	result, err := GeneratePlan(context.Background(), req, synth, parisGeocoder())
	require.NoError(t, err)

	// Day 1: both activities resolved, dining unresolved.
	require.Len(t, result.Routes[0].Stops, 2)
	require.Contains(t, result.Routes[0].Unrouted, "Bistro One")

	// Day 3: one activity resolved, one not.
	require.Len(t, result.Routes[2].Stops, 1)
	require.Equal(t, 0.0, result.Routes[2].TotalDistanceKm)
	require.Contains(t, result.Routes[2].Unrouted, "Sainte-Chapelle")

	// Unresolved items remain on their days.
	require.Equal(t, "Sainte-Chapelle", result.Plan.Days[2].Activities[1].Place)
}

func TestGeneratePlanGenerationFailureIsFatal(t *testing.T) {
	gen := &generation.MockGenerator{Responses: []string{"a draft", "no json here"}}
	synth := NewSynthesizer(gen)

	req := domain.TripRequest{City: "Paris", Budget: 900, Days: 3}

	_, err := GeneratePlan(context.Background(), req, synth, parisGeocoder())
	require.ErrorIs(t, err, ErrGeneration)
}

func TestGeneratePlanWorksWithoutGeocoder(t *testing.T) {
	gen := &generation.MockGenerator{Responses: []string{"a draft", threeDayJSON}}
	synth := NewSynthesizer(gen)

	req := domain.TripRequest{City: "Paris", Budget: 2000, Days: 3}

	result, err := GeneratePlan(context.Background(), req, synth, nil)
	require.NoError(t, err)

	// Nothing locatable: every route degrades to zero metrics.
	for _, rt := range result.Routes {
		require.Empty(t, rt.Stops)
		require.Equal(t, 0, rt.TotalTravelMinutes)
	}

	// Under budget: costs untouched, savings positive.
	require.InDelta(t, 1200.0, result.Plan.TotalCost(), 1e-9)
	require.InDelta(t, 800.0, result.Plan.Savings(), 1e-9)
}

func TestBreakdownBudget(t *testing.T) {
	days := []*domain.Day{
		{Day: 1, Summary: "d1",
			Activities: []domain.Activity{{Time: domain.SlotMorning, Place: "a", Cost: money(100)}},
			Dining:     []domain.Dining{{Name: "r", Cuisine: "c", PricePerPerson: money(50)}},
		},
		{Day: 2, Summary: "d2",
			Activities: []domain.Activity{{Time: domain.SlotMorning, Place: "b", Cost: money(70)}},
		},
	}

	b := BreakdownBudget(days, 1000)
	require.InDelta(t, 170.0, b.ActivitiesCost, 1e-9)
	require.InDelta(t, 50.0, b.DiningCost, 1e-9)
	require.InDelta(t, 100.0, b.TransportationCost, 1e-9)
	require.InDelta(t, 320.0, b.TotalCost, 1e-9)
	require.InDelta(t, 680.0, b.RemainingBudget, 1e-9)
	require.InDelta(t, 160.0, b.CostPerDay, 1e-9)
}
