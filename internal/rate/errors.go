package rate

import "errors"

// ErrRateLimited is returned when the attempt budget for a window is spent.
var ErrRateLimited = errors.New("rate limited")

// ErrRedisUnavailable wraps Redis transport failures.
var ErrRedisUnavailable = errors.New("redis unavailable")
