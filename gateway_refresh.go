package authgate

import (
	"context"
	"errors"

	"github.com/MrEthical07/authgate/internal/flows"
	"github.com/MrEthical07/authgate/jwt"
)

// Refresh exchanges a live refresh token for a new access token. The token
// must still be present in the session store and verify against the refresh
// secret; the stored record is consulted before any cryptographic work. The
// refresh token itself is not rotated.
func (g *Gateway) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if g == nil || g.users == nil || g.jwtManager == nil || g.sessionStore == nil {
		return nil, ErrGatewayNotReady
	}

	result, err := flows.RunRefresh(ctx, refreshToken, flows.RefreshDeps{
		Exists:      g.sessionExists,
		DeleteToken: g.sessionDelete,
		ParseRefresh: func(token string) (string, error) {
			claims, err := g.jwtManager.ParseRefresh(token)
			if err != nil {
				return "", err
			}
			return claims.UID, nil
		},
		TokenExpired: func(err error) bool {
			return errors.Is(err, jwt.ErrTokenExpired)
		},
		GetUserByID: func(ctx context.Context, id string) (flows.UserRecord, error) {
			user, err := g.users.FindByID(ctx, id)
			if err != nil {
				return flows.UserRecord{}, err
			}
			return flowUser(user), nil
		},
		IssueAccess: func(user flows.UserRecord) (string, error) {
			return g.jwtManager.IssueAccess(user.ID, user.Username, user.Admin)
		},
		MetricInc: g.flowMetricInc,
		EmitAudit: g.emitAudit,
		Warn:      g.warn,
		Metrics: flows.RefreshMetrics{
			Success: int(MetricRefreshSuccess),
			Failure: int(MetricRefreshFailure),
		},
		Events: flows.RefreshEvents{
			Success: auditEventRefreshSuccess,
			Denied:  auditEventRefreshDenied,
		},
		Errors: flows.RefreshErrors{
			NotReady:     ErrGatewayNotReady,
			MissingToken: ErrMissingToken,
			Revoked:      ErrRefreshRevoked,
			Invalid:      ErrRefreshInvalid,
			Expired:      ErrRefreshExpired,
			UserNotFound: ErrUserNotFound,
		},
	})
	if err != nil {
		return nil, err
	}

	return &RefreshResult{AccessToken: result.AccessToken}, nil
}
