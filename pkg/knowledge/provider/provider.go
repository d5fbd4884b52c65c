// Package provider implements the LLM clients behind the knowledge service:
// OpenAI, Anthropic, Google Gemini, and local Ollama.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/config"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/knowledge"
)

// New builds the client for the configured provider. Provider "none" returns
// a nil client: the engine then answers knowledge questions with canned
// replies only.
func New(ctx context.Context, cfg *config.Config) (knowledge.Client, error) {
	llm := cfg.LLM
	switch strings.ToLower(llm.Provider) {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderOllama:
		return NewOllamaClient(llm.OllamaHost, llm.Model, llm.MaxTokens, llm.Temperature), nil
	case config.ProviderOpenAI:
		key, err := config.GetSecret(cfg.APIKeySecret())
		if err != nil {
			return nil, fmt.Errorf("openai provider: %w", err)
		}
		return NewOpenAIClient(key, llm.Model, llm.MaxTokens, llm.Temperature), nil
	case config.ProviderAnthropic:
		key, err := config.GetSecret(cfg.APIKeySecret())
		if err != nil {
			return nil, fmt.Errorf("anthropic provider: %w", err)
		}
		return NewAnthropicClient(key, llm.Model, llm.MaxTokens, llm.Temperature), nil
	case config.ProviderGoogle:
		key, err := config.GetSecret(cfg.APIKeySecret())
		if err != nil {
			return nil, fmt.Errorf("google provider: %w", err)
		}
		return NewGoogleClient(ctx, key, llm.Model, llm.MaxTokens, llm.Temperature)
	}
	return nil, fmt.Errorf("unknown llm provider %q", llm.Provider)
}
