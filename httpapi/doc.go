// Package httpapi exposes the gateway over HTTP JSON.
//
// The router is plain gin wiring: each handler binds the request body,
// attaches the caller's source address to the context, delegates to the
// gateway, and maps the sentinel error to a status code. Storage and
// unexpected failures collapse to a generic 500; their detail goes to the
// server log only.
package httpapi
