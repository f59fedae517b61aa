// Package prometheus implements the rosterd metric recorders on top of the
// Prometheus client library.
//
// Import for side effects to register the constructors:
//
//	import _ "github.com/marmos91/rosterd/pkg/metrics/prometheus"
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/rosterd/pkg/metrics"
	"github.com/marmos91/rosterd/pkg/roster/directory"
	"github.com/marmos91/rosterd/pkg/roster/monitor"
	"github.com/marmos91/rosterd/pkg/roster/sync"
)

func init() {
	metrics.RegisterSyncMetricsConstructor(newSyncMetrics)
	metrics.RegisterDirectoryMetricsConstructor(newDirectoryMetrics)
	metrics.RegisterMonitorMetricsConstructor(newMonitorMetrics)
}

// syncMetrics is the Prometheus implementation of sync.Metrics.
type syncMetrics struct {
	observers      prometheus.Gauge
	dropped        prometheus.Counter
	broadcastTotal *prometheus.CounterVec
}

func newSyncMetrics() sync.Metrics {
	reg := metrics.GetRegistry()

	return &syncMetrics{
		observers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "rosterd_sync_observers",
			Help: "Number of currently connected sync observers",
		}),
		dropped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rosterd_sync_observers_dropped_total",
			Help: "Total number of observers dropped for not keeping up",
		}),
		broadcastTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rosterd_sync_events_broadcast_total",
				Help: "Total number of events broadcast to observers by type",
			},
			[]string{"event"},
		),
	}
}

func (m *syncMetrics) ObserverConnected()    { m.observers.Inc() }
func (m *syncMetrics) ObserverDisconnected() { m.observers.Dec() }
func (m *syncMetrics) ObserverDropped()      { m.dropped.Inc() }

func (m *syncMetrics) EventBroadcast(eventType string) {
	m.broadcastTotal.WithLabelValues(eventType).Inc()
}

// directoryMetrics is the Prometheus implementation of directory.Metrics.
type directoryMetrics struct {
	mutations *prometheus.CounterVec
}

func newDirectoryMetrics() directory.Metrics {
	reg := metrics.GetRegistry()

	return &directoryMetrics{
		mutations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rosterd_directory_mutations_total",
				Help: "Total number of recorded directory mutations by action",
			},
			[]string{"action"},
		),
	}
}

func (m *directoryMetrics) MutationRecorded(action string) {
	m.mutations.WithLabelValues(action).Inc()
}

// monitorMetrics is the Prometheus implementation of monitor.Metrics.
type monitorMetrics struct {
	sweeps prometheus.Counter
	flags  prometheus.Counter
}

func newMonitorMetrics() monitor.Metrics {
	reg := metrics.GetRegistry()

	return &monitorMetrics{
		sweeps: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rosterd_monitor_sweeps_total",
			Help: "Total number of completed anomaly detection sweeps",
		}),
		flags: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rosterd_monitor_flags_raised_total",
			Help: "Total number of monitoring flags raised",
		}),
	}
}

func (m *monitorMetrics) SweepCompleted() { m.sweeps.Inc() }
func (m *monitorMetrics) FlagRaised()     { m.flags.Inc() }
