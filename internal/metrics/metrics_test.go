package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"darf/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()
	m.IncCreated()
	m.IncCreated()
	m.IncRejected("duplicate_invoice")
	m.IncCacheLookup(true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RecordsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RecordsRejected.WithLabelValues("duplicate_invoice")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.IncCreated()
		m.IncRejected("x")
		m.IncEmptyQuery("filter")
		m.IncCacheLookup(false)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.IncDeleted()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "darf_records_deleted_total 1")
}
