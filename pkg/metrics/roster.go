package metrics

import (
	"github.com/marmos91/rosterd/pkg/roster/directory"
	"github.com/marmos91/rosterd/pkg/roster/monitor"
	"github.com/marmos91/rosterd/pkg/roster/sync"
)

// NewSyncMetrics creates a Prometheus-backed sync.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
// When nil is returned, the hub skips collection with zero overhead.
func NewSyncMetrics() sync.Metrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusSyncMetrics()
}

// newPrometheusSyncMetrics is implemented in pkg/metrics/prometheus.
// This indirection avoids import cycles while keeping the API clean.
var newPrometheusSyncMetrics func() sync.Metrics

// RegisterSyncMetricsConstructor registers the Prometheus sync metrics
// constructor. Called by pkg/metrics/prometheus during package initialization.
func RegisterSyncMetricsConstructor(constructor func() sync.Metrics) {
	newPrometheusSyncMetrics = constructor
}

// NewDirectoryMetrics creates a Prometheus-backed directory.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewDirectoryMetrics() directory.Metrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusDirectoryMetrics()
}

var newPrometheusDirectoryMetrics func() directory.Metrics

// RegisterDirectoryMetricsConstructor registers the Prometheus directory
// metrics constructor.
func RegisterDirectoryMetricsConstructor(constructor func() directory.Metrics) {
	newPrometheusDirectoryMetrics = constructor
}

// NewMonitorMetrics creates a Prometheus-backed monitor.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewMonitorMetrics() monitor.Metrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusMonitorMetrics()
}

var newPrometheusMonitorMetrics func() monitor.Metrics

// RegisterMonitorMetricsConstructor registers the Prometheus monitor
// metrics constructor.
func RegisterMonitorMetricsConstructor(constructor func() monitor.Metrics) {
	newPrometheusMonitorMetrics = constructor
}
