package metrics

import (
	"testing"
	"time"

	"tastelocal/config"
	"tastelocal/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	cfg := &config.Config{}
	cfg.Env.ServiceName = "tastelocal"
	cfg.Env.Env = "test"

	m := NewSyncMetrics(registry, cfg)

	m.ObserveMutation("addOrder", service.MutationCommitted, 20*time.Millisecond)
	m.ObserveMutation("addOrder", service.MutationRolledBack, 30*time.Millisecond)
	m.ObserveMutation("addOrder", service.MutationRejected, 0)
	m.ObserveSnapshot(service.SnapshotApplied)
	m.ObserveSnapshot(service.SnapshotStale)
	m.ObserveSnapshot(service.SnapshotStale)
	m.SetBoundStores(3)

	assert.InDelta(t, 1, testutil.ToFloat64(m.mutations.WithLabelValues("addOrder", service.MutationCommitted)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.mutations.WithLabelValues("addOrder", service.MutationRejected)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.snapshots.WithLabelValues(service.SnapshotStale)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.boundStores), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.mutationDuration))
}
