// Package knowledge answers free-form product questions by grounding an LLM
// in the panel catalog. The engine treats it as a best-effort collaborator:
// any failure here degrades to a canned reply, never an error the customer
// sees.
package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
)

// Client is one LLM provider. Implementations live in the provider
// subpackage.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const systemPersona = "You are XIGI Assistant, a helpful LED panel sales consultant. " +
	"Answer the customer's question in at most three short sentences, using only the " +
	"product facts provided. If the facts don't cover the question, say you will check " +
	"with the team rather than guessing."

// Service builds catalog-grounded prompts and delegates to a provider.
type Service struct {
	catalog *catalog.Catalog
	client  Client
	counter *TokenCounter
	budget  int
	logger  *logx.Logger
}

// NewService wires a knowledge service. A nil token counter falls back to
// character-based estimation.
func NewService(cat *catalog.Catalog, client Client, counter *TokenCounter, promptBudget int) *Service {
	return &Service{
		catalog: cat,
		client:  client,
		counter: counter,
		budget:  promptBudget,
		logger:  logx.NewLogger("knowledge"),
	}
}

// Answer implements the engine's Answerer contract.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("no llm provider configured")
	}

	facts := buildContext(s.catalog, question)
	if s.budget > 0 {
		facts = s.counter.TruncateToTokenLimit(facts, s.budget)
	}
	system := systemPersona + "\n\n" + facts

	answer, err := s.client.Complete(ctx, system, question)
	if err != nil {
		return "", fmt.Errorf("llm completion failed: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("llm returned an empty answer")
	}
	s.logger.Debug("answered question with %d prompt tokens", s.counter.CountTokens(system))
	return answer, nil
}
