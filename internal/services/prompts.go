package services

import (
	"fmt"
	"strings"

	"travel-itinerary-service/internal/domain"
)

// draftPrompt asks for a free-form, day-structured itinerary built from
// the trip parameters. Output carries no structure guarantee.
func draftPrompt(req domain.TripRequest) string {
	interests := "General sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	dietary := "None"
	if len(req.DietaryRestrictions) > 0 {
		dietary = strings.Join(req.DietaryRestrictions, ", ")
	}

	style := req.TravelStyle
	if style == "" {
		style = "balanced"
	}

	groupSize := req.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}

	return fmt.Sprintf(`You are an expert travel planner with deep knowledge of destinations worldwide.

Generate a detailed travel itinerary for the following request:

City: %s
Budget: $%.0f
Days: %d
Interests: %s
Dietary Restrictions: %s
Travel Style: %s
Group Size: %d

Requirements:
- Create a balanced itinerary for each day (morning, afternoon, evening)
- Include must-visit attractions and hidden gems
- Suggest local dining options within budget
- Consider travel time between locations
- Include estimated costs for activities and dining

Return the itinerary in natural language format, organized by day.
Be specific about locations, timing, and costs.`,
		req.City, req.Budget, req.Days, interests, dietary, style, groupSize)
}

// structurePrompt asks the model to rewrite the draft into the fixed JSON
// schema the pipeline decodes. The schema is embedded literally so the
// response can be parsed without a repair loop.
func structurePrompt(draft string) string {
	return fmt.Sprintf(`Take the following travel itinerary and convert it into structured JSON.

Raw Itinerary:
%s

Convert this into a JSON array where each day has the following structure:
{
    "day": <day_number>,
    "summary": "<brief summary of the day>",
    "activities": [
        {
            "time": "<morning|afternoon|evening>",
            "place": "<location name>",
            "description": "<brief description>",
            "cost": <estimated_cost_in_usd>,
            "duration_minutes": <estimated_duration>,
            "category": "<attraction|museum|park|shopping|etc>"
        }
    ],
    "dining": [
        {
            "name": "<restaurant name>",
            "cuisine": "<cuisine type>",
            "description": "<brief description>",
            "price_per_person": <estimated_price_per_person>,
            "price_range": "<$|$$|$$$>"
        }
    ]
}

Important:
- Ensure all costs are in USD
- Use proper JSON formatting
- Include realistic durations and costs
- Make sure each day has activities for all three time periods
- Return ONLY the JSON array, no additional text`, draft)
}

// enhancementPrompt requests supplementary narrative detail for an
// already-structured plan: local tips, timing advice, weather
// alternatives, etiquette notes, and cost-saving options.
func enhancementPrompt(req domain.TripRequest, daysJSON string) string {
	return fmt.Sprintf(`Enhance the following travel itinerary with additional details and local insights:

City: %s
Budget: $%.0f
Days: %d

Current Itinerary:
%s

Add the following enhancements:
1. Local tips and insider knowledge
2. Best times to visit each attraction
3. Alternative options for bad weather
4. Cultural etiquette and local customs
5. Transportation tips between locations
6. Budget-saving alternatives

Return the enhanced itinerary in the same JSON array format.`,
		req.City, req.Budget, req.Days, daysJSON)
}
