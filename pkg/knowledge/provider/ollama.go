package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// OllamaClient talks to a local Ollama runtime.
type OllamaClient struct {
	client      *api.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOllamaClient creates a client for hostURL (e.g. "http://localhost:11434").
func NewOllamaClient(hostURL, model string, maxTokens int, temperature float32) *OllamaClient {
	parsedURL, err := url.Parse(hostURL)
	if err != nil {
		parsedURL, _ = url.Parse("http://localhost:11434")
	}
	return &OllamaClient{
		client:      api.NewClient(parsedURL, http.DefaultClient),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Complete sends one system+user exchange and returns the answer text.
func (o *OllamaClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": o.temperature,
			"num_predict": o.maxTokens,
		},
	}

	var content string
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return content, nil
}
