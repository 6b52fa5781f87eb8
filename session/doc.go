// Package session persists issued refresh tokens in Redis. A record exists
// from login until logout, defensive cleanup, or TTL expiry; its presence is
// what makes a refresh token redeemable, so deleting it is revocation.
//
// Keys are derived from the SHA-256 of the token string: raw tokens never
// appear in Redis, and key length stays constant regardless of claim size.
package session
