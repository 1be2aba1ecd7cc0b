package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

// Reported when the generation chain errors or returns output that does
// not match the itinerary schema. Fatal to the overall request: a
// malformed core plan cannot be silently substituted.
var ErrGeneration = errors.New("itinerary generation failed")

// Synthesizer turns trip parameters into a structured day-by-day plan by
// chaining two generation calls: a free-form draft, then a rewrite into a
// fixed JSON schema. Each phase is attempted exactly once; failures
// propagate rather than loop.
//
// Generation output is inherently non-deterministic, so structural
// correctness is validated on every call and never cached by input.
type Synthesizer struct {
	Generator ports.TextGenerator
}

func NewSynthesizer(generator ports.TextGenerator) *Synthesizer {
	return &Synthesizer{Generator: generator}
}

// GenerateDays runs the two-phase chain and returns the validated days.
func (s *Synthesizer) GenerateDays(ctx context.Context, req domain.TripRequest) ([]*domain.Day, error) {
	draft, err := s.Generator.Generate(ctx, draftPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%w: draft phase: %v", ErrGeneration, err)
	}

	structured, err := s.Generator.Generate(ctx, structurePrompt(draft))
	if err != nil {
		return nil, fmt.Errorf("%w: structure phase: %v", ErrGeneration, err)
	}

	days, err := decodeDays(structured)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return days, nil
}

// Enhance issues one follow-on call for supplementary narrative detail.
// Enhancement is an enrichment, not a correctness-critical step: on any
// failure (call error, unparsable output, schema drift) the original
// unmodified days are returned.
func (s *Synthesizer) Enhance(ctx context.Context, req domain.TripRequest, days []*domain.Day) []*domain.Day {
	daysJSON, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		log.Printf("enhance itinerary: marshal days: %v", err)
		return days
	}

	resp, err := s.Generator.Generate(ctx, enhancementPrompt(req, string(daysJSON)))
	if err != nil {
		log.Printf("enhance itinerary: generation failed, keeping original: %v", err)
		return days
	}

	enhanced, err := decodeDays(resp)
	if err != nil {
		log.Printf("enhance itinerary: invalid response, keeping original: %v", err)
		return days
	}

	// Day structure must survive enhancement untouched.
	if len(enhanced) != len(days) {
		log.Printf("enhance itinerary: day count changed (%d -> %d), keeping original", len(days), len(enhanced))
		return days
	}

	return enhanced
}

// decodeDays sanitizes and parses model output as the itinerary schema.
func decodeDays(raw string) ([]*domain.Day, error) {
	text := stripCodeFence(raw)

	var days []*domain.Day
	if err := json.Unmarshal([]byte(text), &days); err != nil {
		return nil, fmt.Errorf("parse structured itinerary: %w", err)
	}

	if err := validateDays(days); err != nil {
		return nil, fmt.Errorf("validate structured itinerary: %w", err)
	}

	return days, nil
}

// stripCodeFence removes surrounding markdown code-fence markers that
// generation models commonly wrap JSON in.
func stripCodeFence(s string) string {
	text := strings.TrimSpace(s)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

// validateDays enforces the schema invariants the rest of the pipeline
// relies on: at least one day, 1-based contiguous day indexes, a summary
// per day, and known time slots on every activity.
func validateDays(days []*domain.Day) error {
	if len(days) == 0 {
		return errors.New("no days in response")
	}

	for i, day := range days {
		if day == nil {
			return fmt.Errorf("day at position %d is null", i)
		}
		if day.Day != i+1 {
			return fmt.Errorf("day index %d at position %d, want %d", day.Day, i, i+1)
		}
		if strings.TrimSpace(day.Summary) == "" {
			return fmt.Errorf("day %d has no summary", day.Day)
		}

		for _, a := range day.Activities {
			switch a.Time {
			case domain.SlotMorning, domain.SlotAfternoon, domain.SlotEvening:
			default:
				return fmt.Errorf("day %d: activity %q has unknown time slot %q", day.Day, a.Place, a.Time)
			}
			if strings.TrimSpace(a.Place) == "" {
				return fmt.Errorf("day %d: activity with empty place", day.Day)
			}
		}

		for _, d := range day.Dining {
			if strings.TrimSpace(d.Name) == "" {
				return fmt.Errorf("day %d: dining entry with empty name", day.Day)
			}
		}

		// Normalize so downstream code never sees nil slices.
		if day.Activities == nil {
			day.Activities = []domain.Activity{}
		}
		if day.Dining == nil {
			day.Dining = []domain.Dining{}
		}
	}

	return nil
}
