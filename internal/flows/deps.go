package flows

import "context"

// UserRecord is the flow-local user model. Gateways translate their
// credential-store records into this shape when building deps.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	Admin        bool
}

// AuditFunc emits one audit event. meta is lazily evaluated so failure paths
// do not allocate metadata maps unless a dispatcher is attached.
type AuditFunc func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string)

func noopAudit(context.Context, string, bool, string, error, func() map[string]string) {}

func noopMetric(int) {}

func noopWarn(string, ...any) {}

func noopClientIP(context.Context) string { return "" }
