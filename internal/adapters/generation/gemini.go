package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"travel-itinerary-service/internal/platform/obs"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.7
)

// GeminiGenerator implements the TextGenerator port against the Gemini
// API. The client is a stateless handle, safe for concurrent use and
// reused across requests; timeout and retry policy belong to the SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini generator: api key must be non-empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generator: create client: %w", err)
	}

	if model == "" {
		model = defaultModel
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate issues a single non-streaming prompt and returns the response text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (_ string, err error) {
	defer obs.Time(ctx, "gemini.Generate")(&err)

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](defaultTemperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generator: generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini generator: empty response")
	}

	return text, nil
}
