package ports

import "context"

// Contract for issuing a single prompt to a text-generation model.
//
// The interface is deliberately narrow so the synthesis pipeline can be
// exercised with a deterministic stub returning canned structured text.
type TextGenerator interface {
	// Return the model's text response for one prompt. No streaming.
	Generate(ctx context.Context, prompt string) (string, error)
}
