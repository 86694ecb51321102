package fetcher

import "time"

// Default configuration values.
const (
	defaultUserAgent     = "Mozilla/5.0 (compatible; thaicrawl/1.0)"
	defaultFastTimeout   = 2 * time.Second
	defaultSlowTimeout   = 3 * time.Second
	defaultRetryCooldown = 200 * time.Millisecond
)

// Config holds fetch client configuration.
type Config struct {
	// UserAgent is sent on every request
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
	// FastTimeout bounds the first fetch attempt
	FastTimeout time.Duration `yaml:"fast_timeout" mapstructure:"fast_timeout"`
	// SlowTimeout bounds the second, escalated attempt
	SlowTimeout time.Duration `yaml:"slow_timeout" mapstructure:"slow_timeout"`
	// RetryCooldown is the pause between the two attempts
	RetryCooldown time.Duration `yaml:"retry_cooldown" mapstructure:"retry_cooldown"`
}

// WithDefaults returns a copy of the config with default values applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.FastTimeout <= 0 {
		c.FastTimeout = defaultFastTimeout
	}
	if c.SlowTimeout <= 0 {
		c.SlowTimeout = defaultSlowTimeout
	}
	if c.RetryCooldown <= 0 {
		c.RetryCooldown = defaultRetryCooldown
	}
	return c
}
