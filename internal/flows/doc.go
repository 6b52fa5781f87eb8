// Package flows contains the gateway's flow orchestration: register, login,
// refresh, and logout as pure coordination functions over injected
// dependencies. Flows own ordering, failure mapping, and audit/metric
// emission; they perform no I/O of their own and hold no state.
package flows
