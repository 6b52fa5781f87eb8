package jwt

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignature is returned when a token was signed with the wrong
	// secret or an unexpected algorithm.
	ErrTokenSignature = errors.New("token signature invalid")
	// ErrTokenMalformed is returned when a token is structurally invalid.
	ErrTokenMalformed = errors.New("token malformed")
)

// Config defines token manager parameters. Instances are intended to be
// configured during initialization and then treated as immutable.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

// Manager signs and verifies access and refresh tokens. Access tokens carry
// the identity claims resource servers need; refresh tokens carry only the
// user id.
type Manager struct {
	config Config
}

// AccessClaims is the claim set of an access token.
type AccessClaims struct {
	UID      string `json:"uid"`
	Username string `json:"name"`
	Admin    bool   `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set of a refresh token.
type RefreshClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a [Manager]. Equal or empty secrets
// and non-positive TTLs are rejected.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("hs256 requires non-empty secrets")
	}
	if subtle.ConstantTimeCompare(cfg.AccessSecret, cfg.RefreshSecret) == 1 {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	return &Manager{config: cfg}, nil
}

// IssueAccess signs an access token for the user. TTL is Config.AccessTTL.
func (m *Manager) IssueAccess(uid, username string, admin bool) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UID:      uid,
		Username: username,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.config.AccessSecret)
}

// IssueRefresh signs a refresh token carrying only the user id and returns
// it together with its expiry, which the caller persists alongside the
// session record.
func (m *Manager) IssueRefresh(uid string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.config.RefreshTTL)
	claims := RefreshClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.config.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccess verifies an access token against the access secret.
func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parseHS256(tokenStr, m.config.AccessSecret, m.config.Issuer, m.config.Leeway, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token against the refresh secret.
func (m *Manager) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parseHS256(tokenStr, m.config.RefreshSecret, m.config.Issuer, m.config.Leeway, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// AccessVerifier verifies access tokens only. Resource servers that never
// issue tokens hold just the access secret and use this instead of a full
// [Manager].
type AccessVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewAccessVerifier creates an [AccessVerifier] for the given access secret.
func NewAccessVerifier(secret []byte, issuer string, leeway time.Duration) (*AccessVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("hs256 requires non-empty secret")
	}
	if leeway < 0 || leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &AccessVerifier{secret: secret, issuer: issuer, leeway: leeway}, nil
}

// ParseAccess verifies an access token against the verifier's secret.
func (v *AccessVerifier) ParseAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parseHS256(tokenStr, v.secret, v.issuer, v.leeway, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseHS256(tokenStr string, secret []byte, issuer string, leeway time.Duration, claims jwt.Claims) error {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if leeway > 0 {
		options = append(options, jwt.WithLeeway(leeway))
	}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return classifyParseError(err)
	}
	if !token.Valid {
		return ErrTokenMalformed
	}

	return nil
}

// classifyParseError collapses the library's error taxonomy into the three
// failure kinds callers map to distinct HTTP statuses.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrInvalidKey),
		errors.Is(err, jwt.ErrInvalidKeyType):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
