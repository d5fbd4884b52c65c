package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GoogleClient talks to the Gemini API.
type GoogleClient struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewGoogleClient creates a Gemini client.
func NewGoogleClient(ctx context.Context, apiKey, model string, maxTokens int, temperature float32) (*GoogleClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GoogleClient{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Complete sends one system+user exchange and returns the answer text.
func (g *GoogleClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	temp := g.temperature
	//nolint:gosec // MaxTokens comes from validated config
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(g.maxTokens),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}
	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}, Role: "user"},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	return result.Text(), nil
}
