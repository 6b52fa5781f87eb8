package flows

import "context"

// LogoutMetrics carries metric IDs needed by the logout flow.
type LogoutMetrics struct {
	Logout int
}

// LogoutEvents carries audit event names used by the logout flow.
type LogoutEvents struct {
	Logout string
}

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	NotReady error
}

// LogoutDeps captures logout dependencies.
type LogoutDeps struct {
	DeleteToken func(ctx context.Context, token string) error

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics LogoutMetrics
	Events  LogoutEvents
	Errors  LogoutErrors
}

// RunLogout revokes the refresh token's session record. Revocation is
// idempotent: an absent or empty token succeeds without touching the store.
// Only a storage failure surfaces as an error.
func RunLogout(ctx context.Context, token string, deps LogoutDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	if deps.DeleteToken == nil {
		return deps.Errors.NotReady
	}

	if token == "" {
		return nil
	}

	if err := deps.DeleteToken(ctx, token); err != nil {
		return err
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.EmitAudit(ctx, deps.Events.Logout, true, "", nil, nil)

	return nil
}
