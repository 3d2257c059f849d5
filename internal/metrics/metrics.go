package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RecordsCreated  prometheus.Counter
	RecordsUpdated  prometheus.Counter
	RecordsDeleted  prometheus.Counter
	RecordsRejected *prometheus.CounterVec
	EmptyQueries    *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New creates the metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "darf_records_created_total",
			Help: "Total number of fiscal records created",
		}),
		RecordsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "darf_records_updated_total",
			Help: "Total number of fiscal records updated",
		}),
		RecordsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "darf_records_deleted_total",
			Help: "Total number of fiscal records deleted",
		}),
		RecordsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "darf_records_rejected_total",
			Help: "Record writes rejected by validation, by reason",
		}, []string{"reason"}),
		EmptyQueries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "darf_queries_empty_total",
			Help: "Queries that matched no records, by operation",
		}, []string{"operation"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "darf_aggregate_cache_lookups_total",
			Help: "Aggregate cache lookups, by result",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "darf_http_requests_total",
			Help: "HTTP requests, by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "darf_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer returns the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) IncCreated() {
	if m != nil {
		m.RecordsCreated.Inc()
	}
}

func (m *Metrics) IncUpdated() {
	if m != nil {
		m.RecordsUpdated.Inc()
	}
}

func (m *Metrics) IncDeleted() {
	if m != nil {
		m.RecordsDeleted.Inc()
	}
}

func (m *Metrics) IncRejected(reason string) {
	if m != nil {
		m.RecordsRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncEmptyQuery(operation string) {
	if m != nil {
		m.EmptyQueries.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}
