package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the citation service.
// Metrics are grouped into citation generation and upstream source requests.
// All counters and histograms are registered via promauto with the default
// Prometheus registry.
type Metrics struct {
	// CitationsRequested counts citation requests, labeled by identifier kind.
	CitationsRequested *prometheus.CounterVec

	// CitationsGenerated counts citations rendered successfully, labeled by identifier kind.
	CitationsGenerated *prometheus.CounterVec

	// CitationsFailed counts failed citation requests, labeled by identifier kind and reason.
	CitationsFailed *prometheus.CounterVec

	// CitationDuration observes end-to-end citation generation time in seconds.
	CitationDuration *prometheus.HistogramVec

	// SourceRequestsTotal counts HTTP requests to upstream metadata sources.
	SourceRequestsTotal *prometheus.CounterVec

	// SourceRequestsFailed counts failed upstream requests, labeled by source and error type.
	SourceRequestsFailed *prometheus.CounterVec

	// SourceRequestDuration observes upstream request duration in seconds.
	SourceRequestDuration *prometheus.HistogramVec

	// SourceRateLimited counts 429 responses from upstream sources.
	SourceRateLimited *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Citations
		CitationsRequested: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "citations_requested_total",
			Help:      "Total number of citation requests by identifier kind",
		}, []string{"kind"}),
		CitationsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "citations_generated_total",
			Help:      "Total number of citations generated by identifier kind",
		}, []string{"kind"}),
		CitationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "citations_failed_total",
			Help:      "Total number of failed citation requests by identifier kind and reason",
		}, []string{"kind", "reason"}),
		CitationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "citation_duration_seconds",
			Help:      "Duration of citation generation in seconds by identifier kind",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),

		// Sources
		SourceRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Total number of requests to metadata sources",
		}, []string{"source"}),
		SourceRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_failed_total",
			Help:      "Total number of failed requests to metadata sources",
		}, []string{"source", "error_type"}),
		SourceRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_duration_seconds",
			Help:      "Duration of requests to metadata sources in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		SourceRateLimited: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_rate_limited_total",
			Help:      "Total number of rate limit responses from metadata sources",
		}, []string{"source"}),
	}
}

// RecordCitationRequested records that a citation was requested.
func (m *Metrics) RecordCitationRequested(kind string) {
	if m == nil {
		return
	}
	m.CitationsRequested.WithLabelValues(kind).Inc()
}

// RecordCitationGenerated records a successful citation.
func (m *Metrics) RecordCitationGenerated(kind string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.CitationsGenerated.WithLabelValues(kind).Inc()
	m.CitationDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordCitationFailed records a failed citation request.
func (m *Metrics) RecordCitationFailed(kind, reason string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.CitationsFailed.WithLabelValues(kind, reason).Inc()
	m.CitationDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordSourceRequest records a request to a metadata source.
func (m *Metrics) RecordSourceRequest(source string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.SourceRequestsTotal.WithLabelValues(source).Inc()
	m.SourceRequestDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordSourceRequestFailed records a failed request to a metadata source.
func (m *Metrics) RecordSourceRequestFailed(source, errorType string) {
	if m == nil {
		return
	}
	m.SourceRequestsFailed.WithLabelValues(source, errorType).Inc()
}

// RecordSourceRateLimited records a rate limit response from a source.
func (m *Metrics) RecordSourceRateLimited(source string) {
	if m == nil {
		return
	}
	m.SourceRateLimited.WithLabelValues(source).Inc()
}
