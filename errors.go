package authgate

import "errors"

var (
	// ErrGatewayNotReady is returned when a Gateway method is called before
	// the instance was fully constructed through Builder.Build.
	ErrGatewayNotReady = errors.New("gateway not initialized")
	// ErrValidation is returned when a username or password fails the
	// registration format rules.
	ErrValidation = errors.New("invalid username or password format")
	// ErrDuplicateUsername is returned when the requested username is
	// already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken is returned when a token-bearing operation receives
	// no token at all.
	ErrMissingToken = errors.New("missing token")
	// ErrRefreshRevoked is returned when a refresh token is not present in
	// the session store: it was never issued or has been logged out.
	ErrRefreshRevoked = errors.New("refresh token revoked or unknown")
	// ErrRefreshInvalid is returned when a refresh token fails signature or
	// structural verification.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrRefreshExpired is returned when a refresh token's expiry has passed.
	ErrRefreshExpired = errors.New("refresh token expired")
	// ErrTokenExpired is returned by access-token verification when the
	// token's expiry has passed.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid is returned by access-token verification for bad
	// signatures and malformed tokens.
	ErrTokenInvalid = errors.New("invalid access token")
	// ErrUserNotFound is returned when a token references a user that no
	// longer exists in the credential store.
	ErrUserNotFound = errors.New("user not found")
	// ErrRateLimited is returned when the per-address attempt budget for
	// register or login is exhausted.
	ErrRateLimited = errors.New("rate limited")
	// ErrStoreUnavailable wraps storage-backend failures (Redis or the
	// credential store) so handlers can collapse them to a generic 500.
	ErrStoreUnavailable = errors.New("storage backend unavailable")
)
