// Package middleware exposes HTTP middleware that guards routes behind
// access-token verification.
//
// # Guards
//
//   - [Guard] — net/http middleware for any [authgate.TokenAuthenticator].
//   - [GinGuard] — the same check as a gin handler.
//
// Each guard reads the Authorization header, verifies the bearer token, and
// injects the resulting [authgate.Identity] into the request context. A
// missing token rejects with 401, an expired token with 401, and any other
// verification failure with 403.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into authenticator calls. It does
// NOT implement authentication logic itself — all decisions are delegated to
// the authenticator.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to the authenticator).
//   - Touch the session store or credential store.
//   - Make authorization decisions beyond pass/reject.
package middleware
