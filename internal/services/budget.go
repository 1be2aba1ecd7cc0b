package services

import (
	"math"

	"travel-itinerary-service/internal/domain"
)

// Hard cost floors. The shrink pass never prices an item below these,
// preventing degenerate near-zero entries.
const (
	minActivityCost = 5.0
	minDiningPrice  = 10.0
)

// AllocateBudget rewrites item costs in place when the current total
// across all days exceeds the target budget. This is the only mutation of
// synthesized items anywhere in the pipeline.
//
// The reduction factor is computed once from the pre-pass totals and
// applied uniformly to every priced item, shrinking by at most half the
// proportional deficit. A single pass is therefore not guaranteed to close
// the gap; callers must treat the result as improved, not exactly on
// budget. Items with no declared cost are left untouched.
//
// The pass is deterministic: the same days and target always produce the
// same output costs.
func AllocateBudget(days []*domain.Day, targetBudget float64) []*domain.Day {
	currentTotal := domain.DaysTotalCost(days)
	if currentTotal <= targetBudget || currentTotal == 0 {
		return days
	}

	deficit := currentTotal - targetBudget
	factor := 1 - (deficit/currentTotal)*0.5

	for _, day := range days {
		if day == nil {
			continue
		}

		for i := range day.Activities {
			cost := day.Activities[i].Cost
			if cost == nil || *cost <= 0 {
				continue
			}
			reduced := math.Max(*cost*factor, minActivityCost)
			day.Activities[i].Cost = &reduced
		}

		for i := range day.Dining {
			price := day.Dining[i].PricePerPerson
			if price == nil || *price <= 0 {
				continue
			}
			reduced := math.Max(*price*factor, minDiningPrice)
			day.Dining[i].PricePerPerson = &reduced
		}
	}

	return days
}
