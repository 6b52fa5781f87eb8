package authgate

import (
	"time"

	"github.com/MrEthical07/authgate/jwt"
)

// AccessAuthenticator verifies access tokens without the rest of the gateway.
// Resource servers that never issue tokens hold only the access secret and
// use this with the middleware package.
type AccessAuthenticator struct {
	verifier *jwt.AccessVerifier
}

// NewAccessAuthenticator creates an [AccessAuthenticator] for the given
// access secret. issuer and leeway must match the issuing gateway's
// configuration.
func NewAccessAuthenticator(accessSecret []byte, issuer string, leeway time.Duration) (*AccessAuthenticator, error) {
	verifier, err := jwt.NewAccessVerifier(accessSecret, issuer, leeway)
	if err != nil {
		return nil, err
	}
	return &AccessAuthenticator{verifier: verifier}, nil
}

// AuthenticateAccess verifies a bearer access token and returns the identity
// it proves. The error taxonomy matches [Gateway.AuthenticateAccess].
func (a *AccessAuthenticator) AuthenticateAccess(tokenStr string) (Identity, error) {
	if a == nil || a.verifier == nil {
		return Identity{}, ErrGatewayNotReady
	}
	if tokenStr == "" {
		return Identity{}, ErrMissingToken
	}

	claims, err := a.verifier.ParseAccess(tokenStr)
	if err != nil {
		return Identity{}, mapAccessParseError(err)
	}
	return identityFromClaims(claims), nil
}
