package flows

import (
	"context"
	"errors"
)

// RefreshResult is the flow-local refresh response shape. Only a new access
// token is issued: the presented refresh token is not rotated and remains
// valid until logout or its own expiry.
type RefreshResult struct {
	AccessToken string
}

// RefreshMetrics carries metric IDs needed by the refresh flow.
type RefreshMetrics struct {
	Success int
	Failure int
}

// RefreshEvents carries audit event names used by the refresh flow.
type RefreshEvents struct {
	Success string
	Denied  string
}

// RefreshErrors carries host-level sentinel errors used by the refresh flow.
type RefreshErrors struct {
	NotReady     error
	MissingToken error
	Revoked      error
	Invalid      error
	Expired      error
	UserNotFound error
}

// RefreshDeps captures refresh dependencies.
type RefreshDeps struct {
	Exists       func(ctx context.Context, token string) (bool, error)
	DeleteToken  func(ctx context.Context, token string) error
	ParseRefresh func(token string) (userID string, err error)
	TokenExpired func(error) bool
	GetUserByID  func(ctx context.Context, id string) (UserRecord, error)
	IssueAccess  func(user UserRecord) (string, error)

	MetricInc func(int)
	EmitAudit AuditFunc
	Warn      func(string, ...any)

	Metrics RefreshMetrics
	Events  RefreshEvents
	Errors  RefreshErrors
}

// RunRefresh executes the token refresh state machine: store membership
// first, then cryptographic verification, then user existence. A token whose
// signature no longer verifies is deleted from the store on sight — it can
// never become trustworthy again. Expired tokens are merely rejected; their
// rows age out on their own.
func RunRefresh(ctx context.Context, token string, deps RefreshDeps) (*RefreshResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	if deps.Warn == nil {
		deps.Warn = noopWarn
	}
	if deps.Exists == nil ||
		deps.DeleteToken == nil ||
		deps.ParseRefresh == nil ||
		deps.TokenExpired == nil ||
		deps.GetUserByID == nil ||
		deps.IssueAccess == nil {
		return nil, deps.Errors.NotReady
	}

	if token == "" {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Denied, false, "", deps.Errors.MissingToken, func() map[string]string {
			return map[string]string{"reason": "missing_token"}
		})
		return nil, deps.Errors.MissingToken
	}

	known, err := deps.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if !known {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Denied, false, "", deps.Errors.Revoked, func() map[string]string {
			return map[string]string{"reason": "revoked_or_unknown"}
		})
		return nil, deps.Errors.Revoked
	}

	userID, err := deps.ParseRefresh(token)
	if err != nil {
		if deps.TokenExpired(err) {
			deps.MetricInc(deps.Metrics.Failure)
			deps.EmitAudit(ctx, deps.Events.Denied, false, "", deps.Errors.Expired, func() map[string]string {
				return map[string]string{"reason": "expired"}
			})
			return nil, deps.Errors.Expired
		}
		// The stored record vouched for a token that fails verification;
		// it can no longer be trusted, so revoke it now.
		if delErr := deps.DeleteToken(ctx, token); delErr != nil {
			deps.Warn("authgate: defensive refresh-token cleanup failed")
		}
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Denied, false, "", deps.Errors.Invalid, func() map[string]string {
			return map[string]string{"reason": "signature_invalid", "revoked": "true"}
		})
		return nil, deps.Errors.Invalid
	}

	user, err := deps.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, deps.Errors.UserNotFound) {
			deps.MetricInc(deps.Metrics.Failure)
			deps.EmitAudit(ctx, deps.Events.Denied, false, userID, deps.Errors.UserNotFound, func() map[string]string {
				return map[string]string{"reason": "user_missing"}
			})
			return nil, deps.Errors.UserNotFound
		}
		return nil, err
	}

	access, err := deps.IssueAccess(user)
	if err != nil {
		deps.Warn("authgate: access token issuance failed")
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, true, user.ID, nil, nil)

	return &RefreshResult{AccessToken: access}, nil
}
