package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"travel-itinerary-service/internal/domain"
)

// Default stop durations when the generation model did not provide one.
const (
	defaultActivityMinutes = 60
	diningMinutes          = 90
)

// A stop candidate extracted from a day's activities and dining entries.
type dayLocation struct {
	name     string
	kind     string
	slot     string
	coords   domain.Coordinates
	duration int
}

func (l dayLocation) stop() domain.RouteStop {
	return domain.RouteStop{
		Name:            l.name,
		Kind:            l.kind,
		Slot:            l.slot,
		Coordinates:     l.coords,
		DurationMinutes: l.duration,
	}
}

// OptimizeDays computes a Route for each day.
//
// Days are independent: each reads only its own items and writes only its
// own Route, so routes are computed concurrently with a bounded number of
// workers. A failure in one day degrades that day's route to an empty
// order with zero metrics and leaves sibling days untouched. Cancelling
// the context skips any day not yet walked, degrading it the same way.
func OptimizeDays(ctx context.Context, days []*domain.Day) []*domain.Route {
	routes := make([]*domain.Route, len(days))

	sem := make(chan struct{}, 4)
	var wg sync.WaitGroup

	for i, day := range days {
		wg.Add(1)
		go func(i int, day *domain.Day) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				dayNum := 0
				if day != nil {
					dayNum = day.Day
				}
				routes[i] = &domain.Route{Day: dayNum, Stops: []domain.RouteStop{}}
				return
			}

			route, err := OptimizeDay(day)
			if err != nil {
				dayNum := 0
				if day != nil {
					dayNum = day.Day
				}
				log.Printf("optimize routes: day=%d degraded: %v", dayNum, err)
				route = &domain.Route{Day: dayNum, Stops: []domain.RouteStop{}}
			}
			routes[i] = route
		}(i, day)
	}

	wg.Wait()
	return routes
}

// OptimizeDay builds a visiting order over the day's locatable items using
// a greedy nearest-neighbor walk.
//
// The route is seeded with the first locatable item in input order and
// ties are broken by input order (first candidate wins), so output is
// reproducible for identical input. The walk minimizes the immediate leg
// distance at each step; it does not attempt exact TSP optimality.
//
// Items without usable coordinates are excluded from ordering but reported
// back on the route's Unrouted list; the day's own item lists are never
// modified.
func OptimizeDay(day *domain.Day) (*domain.Route, error) {
	if day == nil {
		return nil, errors.New("optimize day: day must be non-nil")
	}

	locatable, unrouted := extractDayLocations(day)

	route := &domain.Route{
		Day:      day.Day,
		Stops:    []domain.RouteStop{},
		Unrouted: unrouted,
	}

	// Fewer than two locatable items: nothing to reorder, zero metrics.
	if len(locatable) < 2 {
		for _, loc := range locatable {
			route.Stops = append(route.Stops, loc.stop())
		}
		return route, nil
	}

	visited := make([]bool, len(locatable))
	order := make([]int, 0, len(locatable))

	current := 0
	visited[0] = true
	order = append(order, current)

	for len(order) < len(locatable) {
		best := -1
		bestDist := math.MaxFloat64

		// Strict less-than keeps ties on the earliest input index.
		for j := range locatable {
			if visited[j] {
				continue
			}
			d, err := HaversineKm(locatable[current].coords, locatable[j].coords)
			if err != nil {
				return nil, fmt.Errorf("optimize day %d: %q -> %q: %w",
					day.Day, locatable[current].name, locatable[j].name, err)
			}
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 {
			return nil, fmt.Errorf("optimize day %d: failed to select next stop", day.Day)
		}

		route.TotalDistanceKm += bestDist
		route.TotalTravelMinutes += TravelTimeMinutes(bestDist)

		visited[best] = true
		order = append(order, best)
		current = best
	}

	for _, idx := range order {
		route.Stops = append(route.Stops, locatable[idx].stop())
	}

	return route, nil
}

// extractDayLocations splits a day's items into locatable stop candidates
// (in input order, activities before dining) and the names of items whose
// coordinates are absent or out of range.
func extractDayLocations(day *domain.Day) ([]dayLocation, []string) {
	locatable := make([]dayLocation, 0, len(day.Activities)+len(day.Dining))
	var unrouted []string

	for _, a := range day.Activities {
		if a.Coordinates == nil || !a.Coordinates.InRange() {
			unrouted = append(unrouted, a.Place)
			continue
		}

		duration := defaultActivityMinutes
		if a.DurationMinutes != nil {
			duration = *a.DurationMinutes
		}

		locatable = append(locatable, dayLocation{
			name:     a.Place,
			kind:     "activity",
			slot:     a.Time,
			coords:   *a.Coordinates,
			duration: duration,
		})
	}

	for _, d := range day.Dining {
		if d.Coordinates == nil || !d.Coordinates.InRange() {
			unrouted = append(unrouted, d.Name)
			continue
		}

		locatable = append(locatable, dayLocation{
			name:     d.Name,
			kind:     "dining",
			slot:     domain.SlotMeal,
			coords:   *d.Coordinates,
			duration: diningMinutes,
		})
	}

	return locatable, unrouted
}
