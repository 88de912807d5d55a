package service

import "time"

// Snapshot outcomes reported to SyncMetrics.
const (
	SnapshotApplied  = "applied"
	SnapshotStale    = "stale"
	SnapshotDeferred = "deferred"
)

// Mutation outcomes reported to SyncMetrics.
const (
	MutationCommitted  = "committed"
	MutationRolledBack = "rolled_back"
	MutationRejected   = "rejected"
)

// SyncMetrics records what the business synchronizers do.
type SyncMetrics interface {
	ObserveMutation(command, outcome string, elapsed time.Duration)
	ObserveSnapshot(outcome string)
	SetBoundStores(n int)
}

// NopSyncMetrics discards everything.
type NopSyncMetrics struct{}

func (NopSyncMetrics) ObserveMutation(string, string, time.Duration) {}
func (NopSyncMetrics) ObserveSnapshot(string)                        {}
func (NopSyncMetrics) SetBoundStores(int)                            {}
