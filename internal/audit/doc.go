// Package audit implements the internal audit event model, sink contracts,
// and the asynchronous dispatcher used by the gateway. Events describe
// security-relevant outcomes (register, login, refresh, logout, rate limits);
// sinks decide where they go.
package audit
