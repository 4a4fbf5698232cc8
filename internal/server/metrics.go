package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instrumentation for the HTTP server.
// Each instance owns its registry so tests can construct them freely.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests      prometheus.Gauge
	requestsTotal       *prometheus.CounterVec
	calculationsTotal   *prometheus.CounterVec
	calculationDuration *prometheus.HistogramVec
}

// NewMetrics creates the metric set and its /metrics handler.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fibseq_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibseq_requests_total",
			Help: "Total number of HTTP requests by path.",
		}, []string{"path"}),
		calculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibseq_calculations_total",
			Help: "Total number of Fibonacci calculations by algorithm and status.",
		}, []string{"algorithm", "status"}),
		calculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fibseq_calculation_duration_seconds",
			Help:    "Fibonacci calculation duration by algorithm.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"algorithm"}),
	}

	registry.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.calculationsTotal,
		m.calculationDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// IncrementActiveRequests increments the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest records a served request for the given path.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// ObserveCalculation records one calculation outcome and its duration.
func (m *Metrics) ObserveCalculation(algorithm string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.calculationsTotal.WithLabelValues(algorithm, status).Inc()
	m.calculationDuration.WithLabelValues(algorithm).Observe(seconds)
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
