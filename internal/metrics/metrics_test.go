package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/zenkitchen/backend/internal/llm"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveModelAttempt("openai", "a", llm.OutcomeQuota)
	m.ObserveModelAttempt("openai", "b", llm.OutcomeSuccess)
	m.ObserveModelAttempt("openai", "b", llm.OutcomeSuccess)
	m.AIDegraded("recognize")
	m.Transition("consumed")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelAttempts.WithLabelValues("openai", "a", "quota")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.modelAttempts.WithLabelValues("openai", "b", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiDegraded.WithLabelValues("recognize")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("consumed")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveAICall("chat", 300*time.Millisecond)
	m.Transition("wasted")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "zenkitchen_item_transitions_total")
	assert.Contains(t, w.Body.String(), "zenkitchen_ai_call_duration_seconds")
}
