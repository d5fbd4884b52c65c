package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// OpsSummary is the aggregated operational view served to the admin UI when
// a Prometheus server is configured.
type OpsSummary struct {
	TotalTurns          int64            `json:"total_turns"`
	TurnsByIntent       map[string]int64 `json:"turns_by_intent"`
	SessionsStarted     int64            `json:"sessions_started"`
	ConfigurationsSaved int64            `json:"configurations_saved"`
	KnowledgeP95Seconds float64          `json:"knowledge_p95_seconds"`
}

// QueryService queries the chat metrics back out of Prometheus.
type QueryService struct {
	queryAPI v1.API
}

// NewQueryService creates a query service against prometheusURL.
func NewQueryService(prometheusURL string) (*QueryService, error) {
	client, err := api.NewClient(api.Config{
		Address: prometheusURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}
	return &QueryService{queryAPI: v1.NewAPI(client)}, nil
}

// GetOpsSummary aggregates the engine counters for the dashboard.
func (q *QueryService) GetOpsSummary(ctx context.Context) (*OpsSummary, error) {
	summary := &OpsSummary{TurnsByIntent: make(map[string]int64)}

	total, err := q.scalar(ctx, `sum(chat_turns_total)`)
	if err != nil {
		return nil, fmt.Errorf("failed to query total turns: %w", err)
	}
	summary.TotalTurns = int64(total)

	byIntent, _, err := q.queryAPI.Query(ctx, `sum by (intent) (chat_turns_total)`, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to query turns by intent: %w", err)
	}
	if vector, ok := byIntent.(model.Vector); ok {
		for _, sample := range vector {
			if name, ok := sample.Metric["intent"]; ok {
				summary.TurnsByIntent[string(name)] = int64(sample.Value)
			}
		}
	}

	started, err := q.scalar(ctx, `sum(chat_sessions_started_total)`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions started: %w", err)
	}
	summary.SessionsStarted = int64(started)

	saved, err := q.scalar(ctx, `sum(chat_configurations_saved_total)`)
	if err != nil {
		return nil, fmt.Errorf("failed to query configurations saved: %w", err)
	}
	summary.ConfigurationsSaved = int64(saved)

	p95, err := q.scalar(ctx,
		`histogram_quantile(0.95, sum(rate(chat_knowledge_fallback_duration_seconds_bucket[1h])) by (le))`)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge latency: %w", err)
	}
	summary.KnowledgeP95Seconds = p95

	return summary, nil
}

func (q *QueryService) scalar(ctx context.Context, query string) (float64, error) {
	result, _, err := q.queryAPI.Query(ctx, query, time.Now())
	if err != nil {
		return 0, err
	}
	if vector, ok := result.(model.Vector); ok && len(vector) > 0 {
		return float64(vector[0].Value), nil
	}
	return 0, nil
}
