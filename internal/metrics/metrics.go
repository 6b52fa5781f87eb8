package metrics

import "sync/atomic"

// MetricID identifies a specific counter slot.
type MetricID uint16

const (
	MetricRegisterSuccess MetricID = iota
	MetricRegisterInvalid
	MetricRegisterDuplicate
	MetricRegisterRateLimited
	MetricLoginSuccess
	MetricLoginFailure
	MetricLoginRateLimited
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricLogout

	MetricIDCount
)

// Config controls metrics collection. When Enabled is false, all operations
// are no-ops and Snapshot returns an empty snapshot.
type Config struct {
	Enabled bool
}

// Metrics holds one atomic counter per [MetricID].
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]atomic.Uint64
}

// Snapshot is a point-in-time copy of all counters, indexed by [MetricID].
type Snapshot struct {
	Counters []uint64
}

// New creates a [Metrics] instance.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments the counter for id. Safe for concurrent use; out-of-range
// ids are ignored.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot copies all counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil || !m.enabled {
		return Snapshot{}
	}
	out := make([]uint64, MetricIDCount)
	for i := range out {
		out[i] = m.counters[i].Load()
	}
	return Snapshot{Counters: out}
}
