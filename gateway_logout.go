package authgate

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/authgate/internal/flows"
	"github.com/MrEthical07/authgate/session"
)

// Logout revokes the refresh token's session record. The operation is
// idempotent: revoking an unknown or already-revoked token succeeds. The
// session store is the single source of truth, so revocation takes effect
// immediately across all gateway instances sharing it.
func (g *Gateway) Logout(ctx context.Context, refreshToken string) error {
	if g == nil || g.sessionStore == nil {
		return ErrGatewayNotReady
	}

	return flows.RunLogout(ctx, refreshToken, flows.LogoutDeps{
		DeleteToken: g.sessionDelete,
		MetricInc:   g.flowMetricInc,
		EmitAudit:   g.emitAudit,
		Metrics:     flows.LogoutMetrics{Logout: int(MetricLogout)},
		Events:      flows.LogoutEvents{Logout: auditEventLogoutSession},
		Errors:      flows.LogoutErrors{NotReady: ErrGatewayNotReady},
	})
}

func (g *Gateway) sessionExists(ctx context.Context, token string) (bool, error) {
	known, err := g.sessionStore.Exists(ctx, token)
	if errors.Is(err, session.ErrRedisUnavailable) {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return known, err
}

func (g *Gateway) sessionDelete(ctx context.Context, token string) error {
	err := g.sessionStore.Delete(ctx, token)
	if errors.Is(err, session.ErrRedisUnavailable) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
