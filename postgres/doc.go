// Package postgres implements authgate.CredentialStore on PostgreSQL.
//
// Username uniqueness is enforced by a unique index, so concurrent
// registrations of the same name race at the database and exactly one wins;
// the loser surfaces authgate.ErrDuplicateUsername. Schema migrations are
// embedded and applied with goose.
package postgres
