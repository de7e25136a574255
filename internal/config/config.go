package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// UnmarshalText parses values such as "10/min".
func (r *RateLimitConfig) UnmarshalText(text []byte) error {
	parsed, err := parseRateLimit(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// LogConfig controls the application logger.
type LogConfig struct {
	Format string `env:"FORMAT" envDefault:"logfmt"`
	Level  string `env:"LEVEL" envDefault:"info"`
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL          string          `env:"DATABASE_URL"`
	JWTSecret            string          `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTL             time.Duration   `env:"JWT_TTL" envDefault:"24h"`
	Port                 string          `env:"PORT" envDefault:"5000"`
	FrontendURL          string          `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	RateLimitAuth        RateLimitConfig `env:"RATE_LIMIT_AUTH" envDefault:"10/min"`
	RateLimitReports     RateLimitConfig `env:"RATE_LIMIT_REPORTS" envDefault:"5/min"`
	NotificationSchedule string          `env:"NOTIFICATION_SCHEDULE" envDefault:"@every 1h"`
	DefaultPhoneRegion   string          `env:"DEFAULT_PHONE_REGION" envDefault:"US"`
	Log                  LogConfig       `envPrefix:"LOG_"`
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed with struct tags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.TokenTTL)
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	return nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}
