package authgate

import (
	"errors"

	"go.uber.org/zap"

	"github.com/MrEthical07/authgate/internal/audit"
	"github.com/MrEthical07/authgate/internal/metrics"
	"github.com/MrEthical07/authgate/internal/rate"
	"github.com/MrEthical07/authgate/jwt"
	"github.com/MrEthical07/authgate/password"
	"github.com/MrEthical07/authgate/session"
)

// Gateway is the authentication engine. It owns credential verification,
// token issuance, refresh-session state, and the register/login/refresh/logout
// operations. Construct it through [Builder]; instances are immutable after
// Build and safe for concurrent use.
type Gateway struct {
	config       Config
	users        CredentialStore
	passwordHash *password.Hasher
	jwtManager   *jwt.Manager
	sessionStore *session.Store
	rateLimiter  *rate.Limiter
	audit        *audit.Dispatcher
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// Close flushes buffered audit events and releases background resources. The
// Redis client and credential store are owned by the caller and are not
// closed here.
func (g *Gateway) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (g *Gateway) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all operation counters.
func (g *Gateway) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{}
	}
	return g.metrics.Snapshot()
}

func (g *Gateway) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}

func (g *Gateway) warn(msg string, _ ...any) {
	if g == nil || g.logger == nil {
		return
	}
	g.logger.Warn(msg)
}

// AuthenticateAccess verifies a bearer access token and returns the identity
// it proves. An empty token returns [ErrMissingToken], an expired token
// [ErrTokenExpired], and any other verification failure [ErrTokenInvalid].
func (g *Gateway) AuthenticateAccess(tokenStr string) (Identity, error) {
	if g == nil || g.jwtManager == nil {
		return Identity{}, ErrGatewayNotReady
	}
	if tokenStr == "" {
		return Identity{}, ErrMissingToken
	}

	claims, err := g.jwtManager.ParseAccess(tokenStr)
	if err != nil {
		return Identity{}, mapAccessParseError(err)
	}
	return identityFromClaims(claims), nil
}

// SecurityReport returns a read-only snapshot of the gateway's security
// posture for operational inspection.
func (g *Gateway) SecurityReport() SecurityReport {
	if g == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		ProductionMode:     g.config.Security.ProductionMode,
		SigningAlgorithm:   "HS256",
		AccessTTL:          g.config.JWT.AccessTTL,
		RefreshTTL:         g.config.JWT.RefreshTTL,
		BcryptCost:         g.config.Password.Cost,
		RateLimitingActive: g.config.RateLimit.Enabled,
		RefreshRotation:    false,
	}
}

func identityFromClaims(claims *jwt.AccessClaims) Identity {
	return Identity{
		UserID:   claims.UID,
		Username: claims.Username,
		Admin:    claims.Admin,
	}
}

func mapAccessParseError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrTokenInvalid
}
