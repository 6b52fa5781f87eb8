package flows

import (
	"context"
	"errors"
	"time"
)

// LoginResult is the flow-local login response shape.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Username     string
	Admin        bool
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	Success     int
	Failure     int
	RateLimited int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	Success     string
	Failure     string
	RateLimited string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	NotReady           error
	InvalidCredentials error
	RateLimited        error
	UserNotFound       error
}

// LoginDeps captures login dependencies.
type LoginDeps struct {
	ClientIPFromContext func(context.Context) string

	AllowRate         func(ctx context.Context, ip string) error
	GetUserByUsername func(ctx context.Context, username string) (UserRecord, error)
	VerifyPassword    func(password, hash string) bool
	CompareDummy      func(password string)
	IssueAccess       func(user UserRecord) (string, error)
	IssueRefresh      func(user UserRecord) (string, time.Time, error)
	PersistRefresh    func(ctx context.Context, token, userID string, expiresAt time.Time) error

	MetricInc func(int)
	EmitAudit AuditFunc
	Warn      func(string, ...any)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin executes the login flow. The two credential-failure branches
// (unknown username, wrong password) return the same sentinel and perform
// the same bcrypt work, so neither the response body nor its latency reveals
// which check failed.
func RunLogin(ctx context.Context, username, pwd string, deps LoginDeps) (*LoginResult, error) {
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
	if deps.GetUserByUsername == nil ||
		deps.VerifyPassword == nil ||
		deps.CompareDummy == nil ||
		deps.IssueAccess == nil ||
		deps.IssueRefresh == nil ||
		deps.PersistRefresh == nil {
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

	if username == "" || pwd == "" {
		deps.CompareDummy(pwd)
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.InvalidCredentials, func() map[string]string {
			return map[string]string{"identifier": username, "reason": "empty_credentials"}
		})
		return nil, deps.Errors.InvalidCredentials
	}

	user, err := deps.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, deps.Errors.UserNotFound) {
			return nil, err
		}
		// Constant-work branch: burn the same bcrypt comparison a real
		// mismatch would, then fail identically.
		deps.CompareDummy(pwd)
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.InvalidCredentials, func() map[string]string {
			return map[string]string{"identifier": username, "reason": "user_not_found"}
		})
		return nil, deps.Errors.InvalidCredentials
	}

	if !deps.VerifyPassword(pwd, user.PasswordHash) {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, user.ID, deps.Errors.InvalidCredentials, func() map[string]string {
			return map[string]string{"identifier": username, "reason": "password_mismatch"}
		})
		return nil, deps.Errors.InvalidCredentials
	}
	pwd = ""

	access, err := deps.IssueAccess(user)
	if err != nil {
		deps.Warn("authgate: access token issuance failed")
		return nil, err
	}

	refresh, expiresAt, err := deps.IssueRefresh(user)
	if err != nil {
		deps.Warn("authgate: refresh token issuance failed")
		return nil, err
	}

	if err := deps.PersistRefresh(ctx, refresh, user.ID, expiresAt); err != nil {
		deps.EmitAudit(ctx, deps.Events.Failure, false, user.ID, err, func() map[string]string {
			return map[string]string{"identifier": username, "reason": "session_persist"}
		})
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, true, user.ID, nil, func() map[string]string {
		return map[string]string{"identifier": username}
	})

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Admin:        user.Admin,
	}, nil
}
