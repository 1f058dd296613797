package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SessionPolicyFixed   = "fixed"
	SessionPolicySliding = "sliding"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionPolicy        string        `env:"SESSION_POLICY" envDefault:"fixed"`
	SessionIdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`

	CredentialsFile   string `env:"CREDENTIALS_FILE"`
	AdminID           string `env:"ADMIN_ID" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	CookieName   string `env:"COOKIE_NAME" envDefault:"__Host-session"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("config: APP_PORT must not be empty")
	}

	switch c.SessionPolicy {
	case SessionPolicyFixed, SessionPolicySliding:
	default:
		return fmt.Errorf("config: unknown SESSION_POLICY %q", c.SessionPolicy)
	}

	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.SessionPolicy == SessionPolicySliding && c.SessionIdleTimeout <= 0 {
		return errors.New("config: SESSION_IDLE_TIMEOUT must be positive for sliding sessions")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return errors.New("config: SESSION_SWEEP_INTERVAL must be positive")
	}

	if c.CredentialsFile == "" && c.AdminPasswordHash == "" {
		return errors.New("config: either CREDENTIALS_FILE or ADMIN_PASSWORD_HASH is required")
	}

	if c.CookieName == "" {
		return errors.New("config: COOKIE_NAME must not be empty")
	}
	// browsers drop __Host- cookies that are not Secure
	if strings.HasPrefix(c.CookieName, "__Host-") && !c.CookieSecure {
		return errors.New("config: __Host- cookies require COOKIE_SECURE=true")
	}

	return nil
}

// Sliding reports whether validation should extend session expiry.
func (c Config) Sliding() bool {
	return c.SessionPolicy == SessionPolicySliding
}
