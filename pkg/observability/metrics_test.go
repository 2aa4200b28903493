package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics("")
	b := NewMetrics("")

	a.CacheHits.Inc()
	a.SeriesFetches.WithLabelValues("FEDFUNDS", "ok").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.CacheHits))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.SeriesFetches.WithLabelValues("FEDFUNDS", "ok")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("test")
	m.NoCyclesDetected.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_analysis_no_cycles_total 1")
}
