package authgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/authgate/internal/flows"
	"github.com/MrEthical07/authgate/session"
)

// Login verifies the credentials and, on success, issues an access token and
// a refresh token. The refresh token is persisted to the session store before
// either token is returned; a persistence failure yields no tokens. Unknown
// usernames and wrong passwords both return [ErrInvalidCredentials].
func (g *Gateway) Login(ctx context.Context, username, pwd string) (*LoginResult, error) {
	if g == nil || g.users == nil || g.passwordHash == nil || g.jwtManager == nil || g.sessionStore == nil {
		return nil, ErrGatewayNotReady
	}

	result, err := flows.RunLogin(ctx, username, pwd, flows.LoginDeps{
		ClientIPFromContext: clientIPFromContext,
		AllowRate:           g.allowRate("login"),
		GetUserByUsername: func(ctx context.Context, username string) (flows.UserRecord, error) {
			user, err := g.users.FindByUsername(ctx, username)
			if err != nil {
				return flows.UserRecord{}, err
			}
			return flowUser(user), nil
		},
		VerifyPassword: g.passwordHash.Verify,
		CompareDummy:   g.passwordHash.CompareDummy,
		IssueAccess: func(user flows.UserRecord) (string, error) {
			return g.jwtManager.IssueAccess(user.ID, user.Username, user.Admin)
		},
		IssueRefresh: func(user flows.UserRecord) (string, time.Time, error) {
			return g.jwtManager.IssueRefresh(user.ID)
		},
		PersistRefresh: func(ctx context.Context, token, userID string, expiresAt time.Time) error {
			err := g.sessionStore.Persist(ctx, token, userID, expiresAt)
			if errors.Is(err, session.ErrRedisUnavailable) {
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
			return err
		},
		MetricInc: g.flowMetricInc,
		EmitAudit: g.emitAudit,
		Warn:      g.warn,
		Metrics: flows.LoginMetrics{
			Success:     int(MetricLoginSuccess),
			Failure:     int(MetricLoginFailure),
			RateLimited: int(MetricLoginRateLimited),
		},
		Events: flows.LoginEvents{
			Success:     auditEventLoginSuccess,
			Failure:     auditEventLoginFailure,
			RateLimited: auditEventLoginRateLimited,
		},
		Errors: flows.LoginErrors{
			NotReady:           ErrGatewayNotReady,
			InvalidCredentials: ErrInvalidCredentials,
			RateLimited:        ErrRateLimited,
			UserNotFound:       ErrUserNotFound,
		},
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		UserID:       result.UserID,
		Username:     result.Username,
		Admin:        result.Admin,
	}, nil
}
