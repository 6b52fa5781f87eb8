package authgate

import (
	"context"
	"time"
)

// UserRecord is the full account record held by a [CredentialStore]. It
// carries the password hash and is never returned across the HTTP surface.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}

// CreateUserInput is the input for [CredentialStore.Create]. The ID is
// assigned by the gateway (UUID) before the store is called; the store
// persists it verbatim.
type CreateUserInput struct {
	ID           string
	Username     string
	PasswordHash string
	Admin        bool
}

// CredentialStore is the durable user-record backend the Gateway delegates
// credential lookups to. Implementations must enforce username uniqueness
// atomically at the storage layer and surface violations as
// [ErrDuplicateUsername]; lookups for absent records return [ErrUserNotFound].
type CredentialStore interface {
	Create(ctx context.Context, input CreateUserInput) (UserRecord, error)
	FindByUsername(ctx context.Context, username string) (UserRecord, error)
	FindByID(ctx context.Context, id string) (UserRecord, error)
}

// RegisteredUser is the public view returned by [Gateway.Register]. The
// password hash is intentionally absent.
type RegisteredUser struct {
	ID       string
	Username string
}

// LoginResult is returned by [Gateway.Login]. The refresh token it carries
// has already been persisted to the session store.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Username     string
	Admin        bool
}

// RefreshResult is returned by [Gateway.Refresh]. Only a fresh access token
// is issued; the presented refresh token remains valid until logout or its
// own expiry (no rotation).
type RefreshResult struct {
	AccessToken string
}

// Identity is the authenticated caller attached to a request by the
// middleware package after access-token verification.
type Identity struct {
	UserID   string
	Username string
	Admin    bool
}

// TokenAuthenticator verifies a bearer access token and returns the identity
// it proves. Both [Gateway] and [AccessAuthenticator] satisfy it; resource
// servers that never issue tokens use the latter with only the access secret.
type TokenAuthenticator interface {
	AuthenticateAccess(token string) (Identity, error)
}

// SecurityReport is a read-only snapshot of the gateway's security posture,
// returned by [Gateway.SecurityReport].
type SecurityReport struct {
	ProductionMode     bool
	SigningAlgorithm   string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	BcryptCost         int
	RateLimitingActive bool
	RefreshRotation    bool
}
