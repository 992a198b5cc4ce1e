package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.RecordRecompute(OutcomeOK)
	m.RecordRecompute(OutcomeOK)
	m.RecordRecompute(OutcomeMissing)
	m.RecordHTTPRequest(http.MethodGet, "/api/stats", http.StatusOK, 20*time.Millisecond)
	m.ObserveStats(5 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecomputesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputesTotal.WithLabelValues(OutcomeMissing)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/stats", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StatsDuration))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "journal_method_recomputes_total")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRecompute(OutcomeError)
		m.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Second)
		m.ObserveStats(time.Second)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
