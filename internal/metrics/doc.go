// Package metrics implements the in-process metrics backbone: fixed-slot
// atomic counters with snapshot support, no external dependencies on the hot
// path. Exporters render snapshots; they never read live counters.
package metrics
