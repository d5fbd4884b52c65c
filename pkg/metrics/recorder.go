// Package metrics provides Prometheus instrumentation for the conversation
// engine and a query service for the ops dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements the engine's Recorder interface using
// Prometheus metrics.
type PrometheusRecorder struct {
	turnsTotal          *prometheus.CounterVec
	sessionsStarted     prometheus.Counter
	configurationsSaved prometheus.Counter
	validationFailures  *prometheus.CounterVec
	knowledgeDuration   prometheus.Histogram
}

// NewPrometheusRecorder registers the chat metrics on the default registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	return &PrometheusRecorder{
		turnsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_turns_total",
				Help: "Total number of chat turns by classified intent",
			},
			[]string{"intent"},
		),
		sessionsStarted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "chat_sessions_started_total",
				Help: "Total number of chat sessions started",
			},
		),
		configurationsSaved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "chat_configurations_saved_total",
				Help: "Total number of saved panel configurations",
			},
		),
		validationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_validation_failures_total",
				Help: "Total number of rejected customer inputs by field",
			},
			[]string{"field"},
		),
		knowledgeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chat_knowledge_fallback_duration_seconds",
				Help:    "Duration of LLM knowledge fallback calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordTurn counts one classified turn.
func (p *PrometheusRecorder) RecordTurn(intentName string) {
	p.turnsTotal.WithLabelValues(intentName).Inc()
}

// RecordSessionStarted counts a new conversation.
func (p *PrometheusRecorder) RecordSessionStarted() {
	p.sessionsStarted.Inc()
}

// RecordConfigurationSaved counts a saved configuration.
func (p *PrometheusRecorder) RecordConfigurationSaved() {
	p.configurationsSaved.Inc()
}

// RecordValidationFailure counts a rejected input for one field.
func (p *PrometheusRecorder) RecordValidationFailure(field string) {
	p.validationFailures.WithLabelValues(field).Inc()
}

// RecordKnowledgeFallback records the latency of one LLM fallback call.
func (p *PrometheusRecorder) RecordKnowledgeFallback(d time.Duration) {
	p.knowledgeDuration.Observe(d.Seconds())
}
