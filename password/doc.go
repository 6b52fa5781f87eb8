// Package password wraps bcrypt hashing and verification with a fixed work
// factor, plus the constant-work dummy comparison the login flow runs when a
// username does not exist.
package password
