package services

import "fmt"

// Recommendations returns budget-aware planning tips for a city as plain
// text strings. These are composed locally; the generation model is not
// consulted again after the plan is built.
func Recommendations(city string, budget float64, days int) []string {
	if days < 1 {
		days = 1
	}

	return []string{
		fmt.Sprintf("Consider visiting %s during off-peak season for better prices", city),
		fmt.Sprintf("Allocate $%.0f per day for optimal budget management", budget/float64(days)),
		fmt.Sprintf("Plan %d days to experience %s's main attractions without rushing", days, city),
		"Use public transportation to save on travel costs",
		"Book attractions in advance for potential discounts",
	}
}
