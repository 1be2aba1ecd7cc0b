package domain

import "time"

// Time slots assigned to scheduled items. Dining entries always occupy
// the meal slot.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
	SlotMeal      = "meal"
)

// A single scheduled activity within a day.
//
// Cost and duration are unset when the generation model did not provide
// them. Nil coordinates keep the activity on the day's list but exclude it
// from route ordering.
type Activity struct {
	Time            string       `json:"time"`
	Place           string       `json:"place"`
	Description     string       `json:"description"`
	Cost            *float64     `json:"cost,omitempty"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	Category        string       `json:"category,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
}

// A dining option within a day.
type Dining struct {
	Name           string       `json:"name"`
	Cuisine        string       `json:"cuisine"`
	Description    string       `json:"description,omitempty"`
	PricePerPerson *float64     `json:"price_per_person,omitempty"`
	PriceRange     string       `json:"price_range,omitempty"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
}

// One day of a plan: an ordered set of activities and dining entries plus
// a human-readable summary. The index is 1-based, contiguous within a
// plan, and stable once assigned.
type Day struct {
	Day        int        `json:"day"`
	Summary    string     `json:"summary"`
	Activities []Activity `json:"activities"`
	Dining     []Dining   `json:"dining"`
}

// Plan is the top-level multi-day itinerary aggregate. It is created once
// per request and never updated in place; optimized outputs are derived
// values, aside from the explicit budget pass that rewrites item costs.
type Plan struct {
	ID              string
	City            string
	TotalBudget     float64
	DayCount        int
	GeneratedAt     time.Time
	Days            []*Day
	Recommendations []string
}

// TotalCost sums item costs across all days. It is recomputed from the
// current item costs on every call so the total cannot drift after a
// budget pass. Unpriced items contribute zero.
func (p *Plan) TotalCost() float64 {
	return DaysTotalCost(p.Days)
}

// Savings is the unspent part of the budget, never negative.
func (p *Plan) Savings() float64 {
	s := p.TotalBudget - p.TotalCost()
	if s < 0 {
		return 0
	}
	return s
}

// DaysTotalCost sums activity costs and dining prices per person across
// the given days, treating unset values as zero.
func DaysTotalCost(days []*Day) float64 {
	total := 0.0
	for _, day := range days {
		if day == nil {
			continue
		}
		for _, a := range day.Activities {
			if a.Cost != nil {
				total += *a.Cost
			}
		}
		for _, d := range day.Dining {
			if d.PricePerPerson != nil {
				total += *d.PricePerPerson
			}
		}
	}
	return total
}
