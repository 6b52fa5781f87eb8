// Package authgate provides the token-lifecycle core of an authentication
// gateway: credential registration and validation, HMAC-signed access and
// refresh tokens, Redis-backed refresh-session persistence and revocation,
// and a stateless request-authentication check consumed by resource servers.
//
// The package is designed for concurrent server workloads: Gateway methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Gateway], [Builder], [Config],
// and value types (LoginResult, Identity, MetricsSnapshot, etc.). All internal
// coordination — flow orchestration, rate limiting, audit dispatch — lives
// under internal/ and is never exported. Durable user storage is abstracted
// behind [CredentialStore]; the postgres subpackage ships the production
// implementation.
//
// # What this package must NOT do
//
//   - Expose Redis or database clients in its public API.
//   - Perform I/O outside of Gateway methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports authgate (no import cycles).
//
// # Performance contract
//
// AuthenticateAccess is the hot path. It is purely cryptographic: no Redis or
// database round-trips, so resource servers validate requests without
// contacting the auth service. Login performs one bcrypt comparison plus one
// database and one Redis round-trip; the missing-user branch performs an
// equivalent bcrypt comparison against a fixed hash so both failure paths
// present the same latency profile.
package authgate
