package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
)

type stubClient struct {
	system string
	prompt string
	answer string
	err    error
}

func (s *stubClient) Complete(_ context.Context, system, prompt string) (string, error) {
	s.system = system
	s.prompt = prompt
	return s.answer, s.err
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func TestAnswerGroundsPromptInCatalog(t *testing.T) {
	client := &stubClient{answer: "P3mm has a 3mm pixel pitch."}
	svc := NewService(testCatalog(t), client, nil, 0)

	answer, err := svc.Answer(context.Background(), "what is the pixel pitch of P3mm")

	require.NoError(t, err)
	assert.Equal(t, "P3mm has a 3mm pixel pitch.", answer)
	assert.Contains(t, client.system, "XIGI Assistant")
	assert.Contains(t, client.system, "P3mm")
	assert.Equal(t, "what is the pixel pitch of P3mm", client.prompt)
}

func TestAnswerPropagatesProviderError(t *testing.T) {
	client := &stubClient{err: errors.New("rate limited")}
	svc := NewService(testCatalog(t), client, nil, 0)

	_, err := svc.Answer(context.Background(), "any question")
	assert.Error(t, err)
}

func TestAnswerRejectsEmptyCompletion(t *testing.T) {
	client := &stubClient{answer: "   "}
	svc := NewService(testCatalog(t), client, nil, 0)

	_, err := svc.Answer(context.Background(), "any question")
	assert.Error(t, err)
}

func TestAnswerWithoutClient(t *testing.T) {
	svc := NewService(testCatalog(t), nil, nil, 0)

	_, err := svc.Answer(context.Background(), "any question")
	assert.Error(t, err)
}

func TestContextRanking(t *testing.T) {
	cat := testCatalog(t)

	ctxText := buildContext(cat, "how bright is the P4mm outdoor panel")

	lines := strings.Split(strings.TrimSpace(ctxText), "\n")
	require.Greater(t, len(lines), 1)
	assert.Contains(t, lines[1], "P4mm", "best-scoring fact should lead")
}

func TestTokenCounterFallback(t *testing.T) {
	var tc *TokenCounter
	assert.Equal(t, len("12345678")/4, tc.CountTokens("12345678"))
}

func TestTruncateToTokenLimit(t *testing.T) {
	tc, err := NewTokenCounter()
	require.NoError(t, err)

	long := strings.Repeat("led panel pricing and brightness details ", 200)
	short := tc.TruncateToTokenLimit(long, 50)

	assert.Less(t, len(short), len(long))
	assert.True(t, strings.HasSuffix(short, "..."))
	assert.Equal(t, "untouched", tc.TruncateToTokenLimit("untouched", 50))
}
