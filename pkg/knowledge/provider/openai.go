package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAIClient talks to the OpenAI Responses API.
type OpenAIClient struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIClient creates an OpenAI client.
func NewOpenAIClient(apiKey, model string, maxTokens int, temperature float32) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Complete sends one system+user exchange and returns the answer text.
func (o *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           o.model,
		Instructions:    openai.String(system),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		MaxOutputTokens: openai.Int(int64(o.maxTokens)),
		Temperature:     openai.Float(float64(o.temperature)),
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	return resp.OutputText(), nil
}
