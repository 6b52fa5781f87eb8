package flows

import (
	"context"
	"errors"
)

// RegisterResult is the flow-local registration response shape.
type RegisterResult struct {
	UserID   string
	Username string
}

// RegisterMetrics carries metric IDs needed by the register flow.
type RegisterMetrics struct {
	Success     int
	Invalid     int
	Duplicate   int
	RateLimited int
}

// RegisterEvents carries audit event names used by the register flow.
type RegisterEvents struct {
	Success     string
	Failure     string
	RateLimited string
}

// RegisterErrors carries host-level sentinel errors used by the register flow.
type RegisterErrors struct {
	NotReady    error
	Validation  error
	Duplicate   error
	RateLimited error
}

// RegisterDeps captures registration dependencies.
type RegisterDeps struct {
	ClientIPFromContext func(context.Context) string

	AllowRate    func(ctx context.Context, ip string) error
	HashPassword func(password string) (string, error)
	NewUserID    func() string
	CreateUser   func(ctx context.Context, id, username, passwordHash string, admin bool) (UserRecord, error)

	MetricInc func(int)
	EmitAudit AuditFunc
	Warn      func(string, ...any)

	Metrics RegisterMetrics
	Events  RegisterEvents
	Errors  RegisterErrors
}

// RunRegister executes the registration flow: rate budget, format
// validation, password hashing, and atomic user creation. The returned
// result never carries the password hash.
func RunRegister(ctx context.Context, username, pwd string, admin bool, deps RegisterDeps) (*RegisterResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	if deps.Warn == nil {
		deps.Warn = noopWarn
	}
	if deps.ClientIPFromContext == nil {
		deps.ClientIPFromContext = noopClientIP
	}
	if deps.HashPassword == nil || deps.NewUserID == nil || deps.CreateUser == nil {
		return nil, deps.Errors.NotReady
	}

	ip := deps.ClientIPFromContext(ctx)

	if deps.AllowRate != nil {
		if err := deps.AllowRate(ctx, ip); err != nil {
			if errors.Is(err, deps.Errors.RateLimited) {
				deps.MetricInc(deps.Metrics.RateLimited)
				deps.EmitAudit(ctx, deps.Events.RateLimited, false, "", deps.Errors.RateLimited, func() map[string]string {
					return map[string]string{"identifier": username}
				})
				return nil, deps.Errors.RateLimited
			}
			return nil, err
		}
	}

	if !ValidUsername(username) || !ValidPassword(pwd) {
		deps.MetricInc(deps.Metrics.Invalid)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.Validation, func() map[string]string {
			return map[string]string{"identifier": username, "reason": "format"}
		})
		return nil, deps.Errors.Validation
	}

	hash, err := deps.HashPassword(pwd)
	if err != nil {
		deps.Warn("authgate: password hash generation failed")
		return nil, err
	}
	pwd = ""

	user, err := deps.CreateUser(ctx, deps.NewUserID(), username, hash, admin)
	if err != nil {
		if errors.Is(err, deps.Errors.Duplicate) {
			deps.MetricInc(deps.Metrics.Duplicate)
			deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.Duplicate, func() map[string]string {
				return map[string]string{"identifier": username, "reason": "duplicate"}
			})
			return nil, deps.Errors.Duplicate
		}
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", err, func() map[string]string {
			return map[string]string{"identifier": username, "reason": "store"}
		})
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, true, user.ID, nil, func() map[string]string {
		return map[string]string{"identifier": username, "admin": boolString(admin)}
	})

	return &RegisterResult{
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
