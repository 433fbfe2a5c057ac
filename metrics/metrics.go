// Package metrics provides Prometheus metrics for the Wikipedia MCP server.
// It tracks tool calls, Wikipedia API latency and errors, and HTTP transport traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "wikipedia_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// WikipediaAPILatency measures Wikipedia API call latency by language and operation
	WikipediaAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wikipedia_api_latency_seconds",
		Help:      "Wikipedia API call latency by language and operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"lang", "operation"})

	// WikipediaAPIRequestsTotal counts Wikipedia API requests
	WikipediaAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wikipedia_api_requests_total",
		Help:      "Total Wikipedia API requests by language, operation and status",
	}, []string{"lang", "operation", "status"})

	// WikipediaAPIErrors counts Wikipedia API errors by error code
	WikipediaAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wikipedia_api_errors_total",
		Help:      "Wikipedia API errors by operation and error code",
	}, []string{"operation", "error_code"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// OutputSize tracks the size of rendered tool output in characters
	OutputSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "output_size_chars",
		Help:      "Rendered tool output size distribution in characters",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"tool"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Wikipedia API call. Unknown languages are counted under OtherLabel.
func RecordAPICall(lang, operation string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	lang = LangLabel(lang)
	WikipediaAPIRequestsTotal.WithLabelValues(lang, operation, status).Inc()
	WikipediaAPILatency.WithLabelValues(lang, operation).Observe(duration)
	if errorCode != "" {
		WikipediaAPIErrors.WithLabelValues(operation, errorCode).Inc()
	}
}

// RecordOutput records the character count of a rendered tool result
func RecordOutput(tool string, chars int) {
	OutputSize.WithLabelValues(tool).Observe(float64(chars))
}

// RecordHTTPRequest records one request served by the HTTP transport
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}
