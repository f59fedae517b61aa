// Package metrics provides the Prometheus metrics registry and the
// constructors for per-component metric recorders.
//
// Metrics are opt-in: until InitRegistry is called, every constructor
// returns nil and components skip collection entirely.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registry is the process-wide metrics registry. Nil until InitRegistry.
var registry *prometheus.Registry

// InitRegistry creates the metrics registry and registers the standard
// process and Go runtime collectors. Call once at startup, before any
// metric recorder is constructed.
func InitRegistry() {
	if registry != nil {
		return
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled returns whether metrics collection is enabled.
func IsEnabled() bool {
	return registry != nil
}

// GetRegistry returns the metrics registry, or nil if metrics are disabled.
func GetRegistry() *prometheus.Registry {
	return registry
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
