package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"travel-itinerary-service/internal/domain"
)

func coordsPtr(lat, lng float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lng: lng}
}

// Central Paris fixture. Greedy walk from the Louvre visits Orsay,
// Notre-Dame, the Eiffel Tower, then the Arc de Triomphe.
func parisDay() *domain.Day {
	return &domain.Day{
		Day:     1,
		Summary: "Museums and monuments",
		Activities: []domain.Activity{
			{Time: domain.SlotMorning, Place: "Louvre Museum", Coordinates: coordsPtr(48.8606, 2.3376)},
			{Time: domain.SlotMorning, Place: "Eiffel Tower", Coordinates: coordsPtr(48.8584, 2.2945)},
			{Time: domain.SlotAfternoon, Place: "Notre-Dame", Coordinates: coordsPtr(48.8530, 2.3499)},
			{Time: domain.SlotEvening, Place: "Arc de Triomphe", Coordinates: coordsPtr(48.8738, 2.2950)},
		},
		Dining: []domain.Dining{
			{Name: "Musee d'Orsay Cafe", Cuisine: "French", Coordinates: coordsPtr(48.8600, 2.3266)},
		},
	}
}

func TestOptimizeDayGreedyOrder(t *testing.T) {
	day := parisDay()

	route, err := OptimizeDay(day)
	require.NoError(t, err)

	names := make([]string, 0, len(route.Stops))
	for _, s := range route.Stops {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		"Louvre Museum",
		"Musee d'Orsay Cafe",
		"Notre-Dame",
		"Eiffel Tower",
		"Arc de Triomphe",
	}, names)

	require.InDelta(t, 8.49, route.TotalDistanceKm, 0.01)
	require.Equal(t, 15, route.TotalTravelMinutes)
	require.Empty(t, route.Unrouted)

	// The day's own item lists are never reordered.
	require.Equal(t, "Louvre Museum", day.Activities[0].Place)
	require.Equal(t, "Eiffel Tower", day.Activities[1].Place)
}

func TestOptimizeDayReturnsExactPermutation(t *testing.T) {
	day := parisDay()

	route, err := OptimizeDay(day)
	require.NoError(t, err)
	require.Len(t, route.Stops, 5)

	seen := map[string]int{}
	for _, s := range route.Stops {
		seen[s.Name]++
	}
	for name, count := range seen {
		require.Equal(t, 1, count, "stop %q duplicated", name)
	}
}

func TestOptimizeDayIsDeterministic(t *testing.T) {
	first, err := OptimizeDay(parisDay())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := OptimizeDay(parisDay())
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestOptimizeDayFewerThanTwoLocatable(t *testing.T) {
	empty := &domain.Day{Day: 1, Summary: "rest day"}
	route, err := OptimizeDay(empty)
	require.NoError(t, err)
	require.Empty(t, route.Stops)
	require.Equal(t, 0, route.TotalTravelMinutes)
	require.Equal(t, 0.0, route.TotalDistanceKm)

	single := &domain.Day{
		Day:     2,
		Summary: "one stop",
		Activities: []domain.Activity{
			{Time: domain.SlotMorning, Place: "Louvre Museum", Coordinates: coordsPtr(48.8606, 2.3376)},
		},
	}
	route, err = OptimizeDay(single)
	require.NoError(t, err)
	require.Len(t, route.Stops, 1)
	require.Equal(t, 0, route.TotalTravelMinutes)
	require.Equal(t, 0.0, route.TotalDistanceKm)
}

func TestOptimizeDayPreservesItemsWithoutCoordinates(t *testing.T) {
	day := &domain.Day{
		Day:     1,
		Summary: "mixed",
		Activities: []domain.Activity{
			{Time: domain.SlotMorning, Place: "Secret Alley Tour"}, // no coordinates
			{Time: domain.SlotAfternoon, Place: "Louvre Museum", Coordinates: coordsPtr(48.8606, 2.3376)},
		},
	}

	route, err := OptimizeDay(day)
	require.NoError(t, err)

	require.Len(t, route.Stops, 1)
	require.Equal(t, "Louvre Museum", route.Stops[0].Name)
	require.Equal(t, 0.0, route.TotalDistanceKm)
	require.Equal(t, []string{"Secret Alley Tour"}, route.Unrouted)

	// Still on the day itself.
	require.Len(t, day.Activities, 2)
	require.Equal(t, "Secret Alley Tour", day.Activities[0].Place)
}

func TestOptimizeDayExcludesOutOfRangeCoordinates(t *testing.T) {
	day := &domain.Day{
		Day:     1,
		Summary: "bad data",
		Activities: []domain.Activity{
			{Time: domain.SlotMorning, Place: "Glitch Point", Coordinates: coordsPtr(95, 0)},
			{Time: domain.SlotAfternoon, Place: "Louvre Museum", Coordinates: coordsPtr(48.8606, 2.3376)},
			{Time: domain.SlotEvening, Place: "Eiffel Tower", Coordinates: coordsPtr(48.8584, 2.2945)},
		},
	}

	route, err := OptimizeDay(day)
	require.NoError(t, err)
	require.Len(t, route.Stops, 2)
	require.Equal(t, []string{"Glitch Point"}, route.Unrouted)
}

func TestOptimizeDaysIsolatesDays(t *testing.T) {
	days := []*domain.Day{
		parisDay(),
		{Day: 2, Summary: "unlocatable", Activities: []domain.Activity{
			{Time: domain.SlotMorning, Place: "Mystery Spot"},
		}},
		nil, // degraded, must not take down siblings
	}

	routes := OptimizeDays(context.Background(), days)
	require.Len(t, routes, 3)

	require.Len(t, routes[0].Stops, 5)
	require.Len(t, routes[1].Stops, 0)
	require.Equal(t, []string{"Mystery Spot"}, routes[1].Unrouted)

	require.NotNil(t, routes[2])
	require.Empty(t, routes[2].Stops)
	require.Equal(t, 0, routes[2].TotalTravelMinutes)
}

func TestOptimizeDaysHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	days := []*domain.Day{parisDay(), parisDay()}
	days[1].Day = 2

	routes := OptimizeDays(ctx, days)
	require.Len(t, routes, 2)

	// No day is walked after cancellation: every route degrades to an
	// empty order with its day number intact.
	for i, rt := range routes {
		require.NotNil(t, rt)
		require.Equal(t, i+1, rt.Day)
		require.Empty(t, rt.Stops)
		require.Equal(t, 0, rt.TotalTravelMinutes)
		require.Equal(t, 0.0, rt.TotalDistanceKm)
	}
}
