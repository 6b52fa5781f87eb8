package authgate

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config defines the gateway tuning parameters. Instances are intended to be
// configured during initialization and then treated as immutable.
type Config struct {
	JWT       JWTConfig
	Password  PasswordConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
	Security  SecurityConfig
}

// JWTConfig holds token signing parameters. Access and refresh secrets MUST
// differ; Validate rejects equal or empty secrets.
type JWTConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

// PasswordConfig holds bcrypt hashing parameters.
type PasswordConfig struct {
	Cost int
}

// SessionConfig controls the Redis refresh-token store.
type SessionConfig struct {
	RedisPrefix string
}

// RateLimitConfig controls the fixed-window per-address attempt budget for
// register and login. Counters live in Redis, so instances sharing one Redis
// enforce the budget cluster-wide.
type RateLimitConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
}

// AuditConfig controls audit dispatcher buffering behavior.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled bool
}

// SecurityConfig holds deployment-mode switches.
type SecurityConfig struct {
	ProductionMode bool
}

// DefaultConfig returns the baseline configuration: 15 minute access tokens,
// 7 day refresh tokens, bcrypt cost 10, and a 5-per-15-minutes register/login
// budget per source address. Secrets are not defaulted.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "authgate",
		},
		Password: PasswordConfig{Cost: 10},
		Session:  SessionConfig{RedisPrefix: "agrt"},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			MaxAttempts: 5,
			Window:      15 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate checks configuration invariants before the gateway is built.
func (c Config) Validate() error {
	if len(c.JWT.AccessSecret) == 0 {
		return errors.New("access signing secret required")
	}
	if len(c.JWT.RefreshSecret) == 0 {
		return errors.New("refresh signing secret required")
	}
	if subtle.ConstantTimeCompare(c.JWT.AccessSecret, c.JWT.RefreshSecret) == 1 {
		return errors.New("access and refresh signing secrets must differ")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if c.JWT.RefreshTTL <= c.JWT.AccessTTL {
		return errors.New("refresh TTL must exceed access TTL")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	if c.Password.Cost < 4 || c.Password.Cost > 31 {
		return errors.New("bcrypt cost out of range")
	}
	if c.Security.ProductionMode && c.Password.Cost < 10 {
		return errors.New("production mode requires bcrypt cost >= 10")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.MaxAttempts <= 0 {
			return errors.New("rate limit max attempts must be positive")
		}
		if c.RateLimit.Window <= 0 {
			return errors.New("rate limit window must be positive")
		}
	}
	return nil
}

// Env is the process environment of the authgate service, parsed by
// [LoadEnv]. It carries everything cmd/authgate needs to wire the gateway:
// signing secrets, store connection strings, and the deployment-mode flag
// that gates development-only endpoints.
type Env struct {
	ListenAddr      string        `env:"AUTHGATE_LISTEN_ADDR" envDefault:":8080"`
	AccessSecret    string        `env:"AUTHGATE_ACCESS_SECRET,required,notEmpty"`
	RefreshSecret   string        `env:"AUTHGATE_REFRESH_SECRET,required,notEmpty"`
	DatabaseDSN     string        `env:"AUTHGATE_DATABASE_DSN,required,notEmpty"`
	RedisAddr       string        `env:"AUTHGATE_REDIS_ADDR" envDefault:"localhost:6379"`
	Production      bool          `env:"AUTHGATE_PRODUCTION" envDefault:"false"`
	AccessTTL       time.Duration `env:"AUTHGATE_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL      time.Duration `env:"AUTHGATE_REFRESH_TTL" envDefault:"168h"`
	BcryptCost      int           `env:"AUTHGATE_BCRYPT_COST" envDefault:"10"`
	RateLimitMax    int           `env:"AUTHGATE_RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindow time.Duration `env:"AUTHGATE_RATE_LIMIT_WINDOW" envDefault:"15m"`
}

// LoadEnv parses the recognized AUTHGATE_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// Config materializes a gateway [Config] from the parsed environment.
func (e Env) Config() Config {
	cfg := DefaultConfig()
	cfg.JWT.AccessSecret = []byte(e.AccessSecret)
	cfg.JWT.RefreshSecret = []byte(e.RefreshSecret)
	cfg.JWT.AccessTTL = e.AccessTTL
	cfg.JWT.RefreshTTL = e.RefreshTTL
	cfg.Password.Cost = e.BcryptCost
	cfg.RateLimit.MaxAttempts = e.RateLimitMax
	cfg.RateLimit.Window = e.RateLimitWindow
	cfg.Security.ProductionMode = e.Production
	return cfg
}
