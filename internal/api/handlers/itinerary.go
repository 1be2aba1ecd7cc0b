package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/services"
)

// ItineraryHandler exposes the synthesis and optimization pipeline.
// It coordinates the synthesizer, the geocoder, and the optimization
// services; handlers stay unaware of concrete adapters.
type ItineraryHandler struct {
	Synthesizer *services.Synthesizer
	Geocoder    ports.Geocoder
}

// Generate runs the full pipeline: synthesis, geocoding, per-day route
// optimization, budget reallocation, totals.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GenerateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	tripReq, err := validateTripRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.GeneratePlan(r.Context(), tripReq, h.Synthesizer, h.Geocoder)
	if err != nil {
		log.Printf("generate itinerary failed: %v", err)
		if errors.Is(err, services.ErrGeneration) {
			writeError(w, r, http.StatusBadGateway, "itinerary generation failed")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	plan := result.Plan
	routes := make([]dto.RouteResponse, 0, len(result.Routes))
	for _, rt := range result.Routes {
		routes = append(routes, dto.RouteFromDomain(rt))
	}

	res := dto.ItineraryResponse{
		ID:              plan.ID,
		City:            plan.City,
		TotalBudget:     plan.TotalBudget,
		Days:            plan.DayCount,
		GeneratedAt:     plan.GeneratedAt,
		Itinerary:       plan.Days,
		Routes:          routes,
		Summary:         fmt.Sprintf("%d-day itinerary for %s", plan.DayCount, plan.City),
		TotalCost:       plan.TotalCost(),
		Savings:         plan.Savings(),
		Recommendations: plan.Recommendations,
	}

	writeJSON(w, r, http.StatusOK, res)
}

// OptimizeRoute optimizes submitted days only, without regeneration.
func (h *ItineraryHandler) OptimizeRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Days) == 0 {
		writeError(w, r, http.StatusBadRequest, "days must be non-empty")
		return
	}

	domainRoutes := services.OptimizeDays(r.Context(), req.Days)

	routes := make([]dto.RouteResponse, 0, len(domainRoutes))
	for _, rt := range domainRoutes {
		routes = append(routes, dto.RouteFromDomain(rt))
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeRouteResponse{Routes: routes})
}

// Enhance requests supplementary narrative detail for an existing plan.
// Enhancement failure falls back to the submitted days.
func (h *ItineraryHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EnhanceItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Days) == 0 {
		writeError(w, r, http.StatusBadRequest, "days must be non-empty")
		return
	}

	days := h.Synthesizer.Enhance(r.Context(), req.Request, req.Days)
	writeJSON(w, r, http.StatusOK, dto.EnhanceItineraryResponse{Days: days})
}

// BudgetBreakdown reports the spending split for submitted days.
func (h *ItineraryHandler) BudgetBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BudgetBreakdownRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Days) == 0 {
		writeError(w, r, http.StatusBadRequest, "days must be non-empty")
		return
	}

	b := services.BreakdownBudget(req.Days, req.TotalBudget)
	writeJSON(w, r, http.StatusOK, dto.BudgetBreakdownResponse{
		ActivitiesCost:     b.ActivitiesCost,
		DiningCost:         b.DiningCost,
		TransportationCost: b.TransportationCost,
		TotalCost:          b.TotalCost,
		RemainingBudget:    b.RemainingBudget,
		CostPerDay:         b.CostPerDay,
	})
}

// Recommendations returns planning tips for a city from query parameters.
func (h *ItineraryHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	budget := parseFloatDefault(r.URL.Query().Get("budget"), 0)
	days := parseIntDefault(r.URL.Query().Get("days"), 1)
	if days < 1 {
		days = 1
	}

	writeJSON(w, r, http.StatusOK, dto.RecommendationsResponse{
		City:            city,
		Budget:          budget,
		Days:            days,
		Recommendations: services.Recommendations(city, budget, days),
	})
}

// validateTripRequest applies defaults and range checks to incoming trip
// parameters.
func validateTripRequest(req dto.GenerateItineraryRequest) (domain.TripRequest, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return domain.TripRequest{}, errors.New("city is required")
	}

	if req.Budget <= 0 {
		return domain.TripRequest{}, errors.New("budget must be positive")
	}

	if req.Days < 1 || req.Days > 14 {
		return domain.TripRequest{}, errors.New("days must be between 1 and 14")
	}

	style := strings.TrimSpace(req.TravelStyle)
	if style == "" {
		style = "balanced"
	}

	groupSize := req.GroupSize
	if groupSize == 0 {
		groupSize = 1
	}
	if groupSize < 1 || groupSize > 20 {
		return domain.TripRequest{}, errors.New("group_size must be between 1 and 20")
	}

	return domain.TripRequest{
		City:                city,
		Budget:              req.Budget,
		Days:                req.Days,
		Interests:           req.Interests,
		DietaryRestrictions: req.DietaryRestrictions,
		TravelStyle:         style,
		GroupSize:           groupSize,
	}, nil
}
