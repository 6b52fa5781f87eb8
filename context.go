package authgate

import "context"

type clientIPContextKey struct{}

// WithClientIP attaches the caller's source address to ctx. The Gateway uses
// it for per-address rate limiting and audit logging; an empty value disables
// the per-address counters for that call.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
