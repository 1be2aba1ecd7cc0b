package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

// PlanResult bundles the generated plan with the derived per-day routes.
// Routes are derived values and are not stored on the plan itself.
type PlanResult struct {
	Plan   *domain.Plan
	Routes []*domain.Route
}

// GeneratePlan runs the full pipeline for one request:
//
//  1. two-phase synthesis (fatal on failure)
//  2. best-effort geocoding of every place without coordinates
//  3. per-day route optimization (degrades per day, never fails)
//  4. single-pass budget reallocation
//
// The plan is assembled from the request input; totals and savings are
// derived from item costs at read time.
func GeneratePlan(
	ctx context.Context,
	req domain.TripRequest,
	synth *Synthesizer,
	geocoder ports.Geocoder,
) (*PlanResult, error) {
	days, err := synth.GenerateDays(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	GeocodeDays(ctx, geocoder, req.City, days)

	routes := OptimizeDays(ctx, days)

	AllocateBudget(days, req.Budget)

	plan := &domain.Plan{
		ID:              uuid.NewString(),
		City:            req.City,
		TotalBudget:     req.Budget,
		DayCount:        req.Days,
		GeneratedAt:     time.Now().UTC(),
		Days:            days,
		Recommendations: Recommendations(req.City, req.Budget, req.Days),
	}

	return &PlanResult{Plan: plan, Routes: routes}, nil
}

// GeocodeDays fills in missing coordinates on the days' items by resolving
// "<place>, <city>" through the geocoder. Lookups are independent, so they
// fan out with a bounded number of workers; each worker writes only its own
// item. Failures are logged and skipped: an unresolved place simply stays
// out of route ordering.
func GeocodeDays(ctx context.Context, geocoder ports.Geocoder, city string, days []*domain.Day) {
	if geocoder == nil {
		return
	}

	type lookup struct {
		place  string
		assign func(domain.Coordinates)
	}

	var lookups []lookup
	for _, day := range days {
		if day == nil {
			continue
		}
		for i := range day.Activities {
			if day.Activities[i].Coordinates != nil {
				continue
			}
			a := &day.Activities[i]
			lookups = append(lookups, lookup{
				place:  a.Place,
				assign: func(c domain.Coordinates) { a.Coordinates = &c },
			})
		}
		for i := range day.Dining {
			if day.Dining[i].Coordinates != nil {
				continue
			}
			d := &day.Dining[i]
			lookups = append(lookups, lookup{
				place:  d.Name,
				assign: func(c domain.Coordinates) { d.Coordinates = &c },
			})
		}
	}

	if len(lookups) == 0 {
		return
	}

	sem := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, l := range lookups {
		wg.Add(1)
		go func(l lookup) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			query := l.place
			if strings.TrimSpace(city) != "" {
				query = l.place + ", " + city
			}

			coords, err := geocoder.Geocode(ctx, query)
			if err != nil {
				log.Printf("geocode days: %q unresolved: %v", l.place, err)
				return
			}

			l.assign(coords)
		}(l)
	}

	wg.Wait()
}

// BudgetBreakdown splits plan spending into activity, dining, and an
// estimated transportation share (10% of the budget).
type BudgetBreakdown struct {
	ActivitiesCost     float64
	DiningCost         float64
	TransportationCost float64
	TotalCost          float64
	RemainingBudget    float64
	CostPerDay         float64
}

// BreakdownBudget computes the spending breakdown for a set of days
// against a total budget.
func BreakdownBudget(days []*domain.Day, totalBudget float64) BudgetBreakdown {
	var activities, dining float64
	for _, day := range days {
		if day == nil {
			continue
		}
		for _, a := range day.Activities {
			if a.Cost != nil {
				activities += *a.Cost
			}
		}
		for _, d := range day.Dining {
			if d.PricePerPerson != nil {
				dining += *d.PricePerPerson
			}
		}
	}

	transportation := totalBudget * 0.1
	total := activities + dining + transportation

	costPerDay := 0.0
	if len(days) > 0 {
		costPerDay = total / float64(len(days))
	}

	return BudgetBreakdown{
		ActivitiesCost:     activities,
		DiningCost:         dining,
		TransportationCost: transportation,
		TotalCost:          total,
		RemainingBudget:    totalBudget - total,
		CostPerDay:         costPerDay,
	}
}
