package authgate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrEthical07/authgate/internal/flows"
	"github.com/MrEthical07/authgate/internal/rate"
)

// Register creates a credential record for a new user. The username must be
// 3-20 characters of letters, digits, and underscore; the password at least 8
// characters with an uppercase letter, a lowercase letter, and a digit. The
// attempt counts against the caller's per-address budget whether it succeeds
// or not.
func (g *Gateway) Register(ctx context.Context, username, pwd string, admin bool) (*RegisteredUser, error) {
	if g == nil || g.users == nil || g.passwordHash == nil {
		return nil, ErrGatewayNotReady
	}

	result, err := flows.RunRegister(ctx, username, pwd, admin, flows.RegisterDeps{
		ClientIPFromContext: clientIPFromContext,
		AllowRate:           g.allowRate("register"),
		HashPassword:        g.passwordHash.Hash,
		NewUserID:           uuid.NewString,
		CreateUser: func(ctx context.Context, id, username, passwordHash string, admin bool) (flows.UserRecord, error) {
			user, err := g.users.Create(ctx, CreateUserInput{
				ID:           id,
				Username:     username,
				PasswordHash: passwordHash,
				Admin:        admin,
			})
			if err != nil {
				return flows.UserRecord{}, err
			}
			return flowUser(user), nil
		},
		MetricInc: g.flowMetricInc,
		EmitAudit: g.emitAudit,
		Warn:      g.warn,
		Metrics: flows.RegisterMetrics{
			Success:     int(MetricRegisterSuccess),
			Invalid:     int(MetricRegisterInvalid),
			Duplicate:   int(MetricRegisterDuplicate),
			RateLimited: int(MetricRegisterRateLimited),
		},
		Events: flows.RegisterEvents{
			Success:     auditEventRegisterSuccess,
			Failure:     auditEventRegisterFailure,
			RateLimited: auditEventRegisterRateLimited,
		},
		Errors: flows.RegisterErrors{
			NotReady:    ErrGatewayNotReady,
			Validation:  ErrValidation,
			Duplicate:   ErrDuplicateUsername,
			RateLimited: ErrRateLimited,
		},
	})
	if err != nil {
		return nil, err
	}

	return &RegisteredUser{
		ID:       result.UserID,
		Username: result.Username,
	}, nil
}

func (g *Gateway) flowMetricInc(id int) {
	g.metricInc(MetricID(id))
}

// allowRate binds the limiter to one operation scope and collapses its error
// surface to the gateway sentinels.
func (g *Gateway) allowRate(scope string) func(ctx context.Context, ip string) error {
	if g.rateLimiter == nil {
		return nil
	}
	return func(ctx context.Context, ip string) error {
		err := g.rateLimiter.Allow(ctx, scope, ip)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, rate.ErrRateLimited):
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
}

func flowUser(user UserRecord) flows.UserRecord {
	return flows.UserRecord{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Admin:        user.Admin,
	}
}
