package authgate

import "github.com/MrEthical07/authgate/internal/metrics"

// MetricID identifies one gateway operation counter.
type MetricID = metrics.MetricID

const (
	MetricRegisterSuccess     = metrics.MetricRegisterSuccess
	MetricRegisterInvalid     = metrics.MetricRegisterInvalid
	MetricRegisterDuplicate   = metrics.MetricRegisterDuplicate
	MetricRegisterRateLimited = metrics.MetricRegisterRateLimited
	MetricLoginSuccess        = metrics.MetricLoginSuccess
	MetricLoginFailure        = metrics.MetricLoginFailure
	MetricLoginRateLimited    = metrics.MetricLoginRateLimited
	MetricRefreshSuccess      = metrics.MetricRefreshSuccess
	MetricRefreshFailure      = metrics.MetricRefreshFailure
	MetricLogout              = metrics.MetricLogout
)

// MetricsSnapshot is a point-in-time copy of all counters, indexed by
// [MetricID].
type MetricsSnapshot = metrics.Snapshot
