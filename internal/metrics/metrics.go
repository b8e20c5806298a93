// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trend_analyzer"

// Drop reasons recorded by the ingestion paths.
const (
	ReasonInvalidViews = "invalid_views"
	ReasonIncomplete   = "incomplete"
)

// Metrics tracks operational counters across the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	rowsDropped     *prometheus.CounterVec
	liveFetches     *prometheus.CounterVec
	rowsIngested    *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "static_cache_lookups_total",
			Help:      "Static loader memo lookups by result.",
		}, []string{"result"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows dropped during ingestion by source and reason.",
		}, []string{"source", "reason"}),
		liveFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_fetches_total",
			Help:      "Live trending fetches by outcome.",
		}, []string{"outcome"}),
		rowsIngested: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_ingested",
			Help:      "Rows handed downstream by the latest ingestion of each source.",
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.cacheLookups,
		m.rowsDropped,
		m.liveFetches,
		m.rowsIngested,
	)

	return m
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveCacheLookup records a memo hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// AddDropped records rows dropped for reason.
func (m *Metrics) AddDropped(source, reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsDropped.WithLabelValues(source, reason).Add(float64(n))
}

// ObserveLiveFetch records the outcome of one remote call.
func (m *Metrics) ObserveLiveFetch(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.liveFetches.WithLabelValues(outcome).Inc()
}

// SetIngested records how many rows source handed downstream.
func (m *Metrics) SetIngested(source string, n int) {
	if m == nil {
		return
	}
	m.rowsIngested.WithLabelValues(source).Set(float64(n))
}
