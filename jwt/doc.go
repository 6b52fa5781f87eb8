// Package jwt manages access- and refresh-token issuance and verification
// with two independent HMAC-SHA256 secrets and strict validation semantics.
// A leaked refresh secret cannot forge access tokens and vice versa.
package jwt
