// Package rate enforces fixed-window attempt budgets on Redis counters.
// Because the counters live in Redis rather than process memory, gateway
// instances that share a Redis enforce one budget cluster-wide.
package rate
