package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the tool server.
type Metrics struct {
	ToolCalls     *prometheus.CounterVec // labels: tool={get_alerts,get_forecast}, outcome={ok,invalid,empty,unavailable,malformed}
	ServerRunning prometheus.Gauge

	// Upstream NWS API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: resource={alerts,points,forecast}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: resource={alerts,points,forecast}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		ServerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_mcp",
			Name:      "server_running",
			Help:      "1 while the stdio tool server is serving, 0 otherwise.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_requests_total",
			Help:      "NWS API requests by resource and outcome.",
		}, []string{"resource", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_request_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"resource"}),
	}

	prometheus.MustRegister(
		m.ToolCalls,
		m.ServerRunning,
		m.UpstreamRequests,
		m.UpstreamDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ToolCalls:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "tool_calls_total"}, []string{"tool", "outcome"}),
		ServerRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_mcp", Name: "server_running"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "upstream_requests_total"}, []string{"resource", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "upstream_request_duration_seconds"}, []string{"resource"}),
	}
}
