package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/zenkitchen/backend/internal/llm"
)

// Metrics owns the service's collectors and the registry they live in.
type Metrics struct {
	registry      *prometheus.Registry
	modelAttempts *prometheus.CounterVec
	aiDegraded    *prometheus.CounterVec
	aiDuration    *prometheus.HistogramVec
	transitions   *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		modelAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenkitchen_ai_model_attempts_total",
				Help: "AI model attempts by provider, model and outcome",
			},
			[]string{"provider", "model", "outcome"},
		),
		aiDegraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenkitchen_ai_degraded_total",
				Help: "AI calls answered with the fallback result",
			},
			[]string{"operation"},
		),
		aiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zenkitchen_ai_call_duration_seconds",
				Help:    "Time taken by AI recognize and chat calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
			[]string{"operation"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenkitchen_item_transitions_total",
				Help: "Inventory item lifecycle transitions",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(m.modelAttempts, m.aiDegraded, m.aiDuration, m.transitions)
	return m
}

// ObserveModelAttempt matches the llm.WithAttemptObserver callback.
func (m *Metrics) ObserveModelAttempt(provider, model string, outcome llm.Outcome) {
	m.modelAttempts.WithLabelValues(provider, model, string(outcome)).Inc()
}

func (m *Metrics) AIDegraded(operation string) {
	m.aiDegraded.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveAICall(operation string, d time.Duration) {
	m.aiDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) Transition(status string) {
	m.transitions.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
