package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("generate", http.StatusOK)
	m.ObserveRequest("generate", http.StatusOK)
	m.ObserveRequest("generate", http.StatusBadRequest)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("generate", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("generate", "400")))
}

func TestObserveUpstreamError(t *testing.T) {
	m := New()
	m.ObserveUpstreamError("quota")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamErrors.WithLabelValues("quota")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("generate", http.StatusOK)
		m.ObserveUpstream("model", time.Second)
		m.ObserveUpstreamError("auth")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveUpstream("gemini-2.0-flash", 250*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "genproxy_upstream_request_duration_seconds"))
	assert.True(t, strings.Contains(body, `model="gemini-2.0-flash"`))
}
