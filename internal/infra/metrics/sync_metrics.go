// Package metrics exposes synchronizer activity to Prometheus.
package metrics

import (
	"strings"
	"time"

	"tastelocal/config"
	"tastelocal/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SyncMetrics implements service.SyncMetrics on Prometheus collectors.
type SyncMetrics struct {
	mutations        *prometheus.CounterVec
	mutationDuration *prometheus.HistogramVec
	snapshots        *prometheus.CounterVec
	boundStores      prometheus.Gauge
}

var _ service.SyncMetrics = (*SyncMetrics)(nil)

// NewRegistry returns the registry the process exposes on the metrics endpoint.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// NewSyncMetrics registers the synchronizer collectors on registerer.
func NewSyncMetrics(registerer prometheus.Registerer, cfg *config.Config) *SyncMetrics {
	serviceName := strings.TrimSpace(cfg.Env.ServiceName)
	if serviceName == "" {
		serviceName = "tastelocal"
	}
	environment := strings.TrimSpace(cfg.Env.Env)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &SyncMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tastelocal_sync_mutations_total",
			Help:        "Business mutations by command and outcome.",
			ConstLabels: constLabels,
		}, []string{"command", "outcome"}),
		mutationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "tastelocal_sync_mutation_duration_seconds",
			Help:        "Time from optimistic apply to a settled remote write.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		}, []string{"command"}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tastelocal_sync_snapshots_total",
			Help:        "Inbound document snapshots by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		boundStores: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "tastelocal_sync_bound_stores",
			Help:        "Business stores currently subscribed to the document store.",
			ConstLabels: constLabels,
		}),
	}

	registerer.MustRegister(m.mutations, m.mutationDuration, m.snapshots, m.boundStores)

	return m
}

// ObserveMutation counts a settled mutation and records its latency.
func (m *SyncMetrics) ObserveMutation(command, outcome string, elapsed time.Duration) {
	m.mutations.WithLabelValues(command, outcome).Inc()
	if outcome != service.MutationRejected {
		m.mutationDuration.WithLabelValues(command).Observe(elapsed.Seconds())
	}
}

// ObserveSnapshot counts an inbound snapshot.
func (m *SyncMetrics) ObserveSnapshot(outcome string) {
	m.snapshots.WithLabelValues(outcome).Inc()
}

// SetBoundStores reports how many stores are live.
func (m *SyncMetrics) SetBoundStores(n int) {
	m.boundStores.Set(float64(n))
}
