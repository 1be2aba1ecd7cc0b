package domain

import (
	"testing"
	"time"
)

func money(v float64) *float64 { return &v }

func TestPlanTotalCostRecomputes(t *testing.T) {
	day := &Day{
		Day:     1,
		Summary: "test",
		Activities: []Activity{
			{Time: SlotMorning, Place: "a", Cost: money(100)},
			{Time: SlotAfternoon, Place: "b"}, // unpriced
		},
		Dining: []Dining{
			{Name: "r", Cuisine: "c", PricePerPerson: money(40)},
		},
	}

	plan := &Plan{
		ID:          "test-id",
		City:        "Paris",
		TotalBudget: 200,
		DayCount:    1,
		GeneratedAt: time.Now().UTC(),
		Days:        []*Day{day},
	}

	if got := plan.TotalCost(); got != 140 {
		t.Fatalf("TotalCost = %v, want 140", got)
	}

	// Totals must follow cost mutations, never a cached value.
	*day.Activities[0].Cost = 50
	if got := plan.TotalCost(); got != 90 {
		t.Fatalf("TotalCost after mutation = %v, want 90", got)
	}
}

func TestPlanSavingsNeverNegative(t *testing.T) {
	day := &Day{
		Day:     1,
		Summary: "test",
		Activities: []Activity{
			{Time: SlotMorning, Place: "a", Cost: money(300)},
		},
	}

	plan := &Plan{TotalBudget: 200, Days: []*Day{day}}
	if got := plan.Savings(); got != 0 {
		t.Fatalf("Savings = %v, want 0", got)
	}

	plan.TotalBudget = 500
	if got := plan.Savings(); got != 200 {
		t.Fatalf("Savings = %v, want 200", got)
	}
}

func TestDaysTotalCostSkipsNilDays(t *testing.T) {
	days := []*Day{
		nil,
		{Day: 1, Summary: "x", Dining: []Dining{{Name: "r", Cuisine: "c", PricePerPerson: money(25)}}},
	}

	if got := DaysTotalCost(days); got != 25 {
		t.Fatalf("DaysTotalCost = %v, want 25", got)
	}
}

func TestCoordinatesInRange(t *testing.T) {
	valid := []Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 48.8566, Lng: 2.3522},
	}
	for _, c := range valid {
		if !c.InRange() {
			t.Errorf("InRange(%v) = false, want true", c)
		}
	}

	invalid := []Coordinates{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -200},
	}
	for _, c := range invalid {
		if c.InRange() {
			t.Errorf("InRange(%v) = true, want false", c)
		}
	}
}
