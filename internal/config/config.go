// Package config defines the service configuration and its loading rules.
// Configuration is sourced from an optional YAML file, then overridden by
// environment variables with the CLASSIFY_ prefix. A .env file in the
// working directory is loaded best-effort before the environment is read.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/avclassify/internal/util"
)

// Default configuration values.
const (
	DefaultPort               = 8080
	DefaultReadTimeout        = 30 * time.Second
	DefaultWriteTimeout       = 30 * time.Second
	DefaultIdleTimeout        = 120 * time.Second
	DefaultMaxRequestBodySize = 1 << 20 // 1 MB
	DefaultMaxItems           = 1000
	DefaultRateLimitRPS       = 100
	DefaultRateLimitBurst     = 50
	DefaultMetricsPort        = 9090
	DefaultMetricsPath        = "/metrics"
)

// Config holds the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Security  SecurityConfig  `yaml:"security"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Identity  IdentityConfig  `yaml:"identity"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address            string   `yaml:"address"`
	Port               int      `yaml:"port"`
	ReadTimeout        Duration `yaml:"readTimeout"`
	WriteTimeout       Duration `yaml:"writeTimeout"`
	IdleTimeout        Duration `yaml:"idleTimeout"`
	MaxRequestBodySize int64    `yaml:"maxRequestBodySize"`
	// MaxItems caps the number of elements accepted in one request.
	MaxItems int `yaml:"maxItems"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerSecond int  `yaml:"requestsPerSecond"`
	Burst             int  `yaml:"burst"`
}

// SecurityConfig holds security headers configuration.
type SecurityConfig struct {
	Enabled               bool   `yaml:"enabled"`
	HSTSMaxAge            int    `yaml:"hstsMaxAge"`
	ContentSecurityPolicy string `yaml:"contentSecurityPolicy"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// IdentityConfig holds the static identity fields merged into every
// successful classification response. These are deployment values, not
// computed by the classifier.
type IdentityConfig struct {
	UserID     string `yaml:"userId"`
	Email      string `yaml:"email"`
	RollNumber string `yaml:"rollNumber"`
}

// Default returns a Config with default values. Identity fields have no
// defaults and must be supplied by file or environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               DefaultPort,
			ReadTimeout:        Duration(DefaultReadTimeout),
			WriteTimeout:       Duration(DefaultWriteTimeout),
			IdleTimeout:        Duration(DefaultIdleTimeout),
			MaxRequestBodySize: DefaultMaxRequestBodySize,
			MaxItems:           DefaultMaxItems,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: DefaultRateLimitRPS,
			Burst:             DefaultRateLimitBurst,
		},
		Security: SecurityConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    DefaultMetricsPort,
			Path:    DefaultMetricsPath,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides. A .env file is loaded
// best-effort first so it can feed the environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv overrides configuration from CLASSIFY_-prefixed environment
// variables.
func (c *Config) applyEnv() {
	c.Server.Address = util.GetEnv("CLASSIFY_ADDRESS", c.Server.Address)
	c.Server.Port = util.GetEnvInt("CLASSIFY_PORT", c.Server.Port)
	c.Server.MaxRequestBodySize = util.GetEnvInt64("CLASSIFY_MAX_BODY_BYTES", c.Server.MaxRequestBodySize)
	c.Server.MaxItems = util.GetEnvInt("CLASSIFY_MAX_ITEMS", c.Server.MaxItems)

	c.Log.Level = util.GetEnv("CLASSIFY_LOG_LEVEL", c.Log.Level)
	c.Log.Format = util.GetEnv("CLASSIFY_LOG_FORMAT", c.Log.Format)

	c.RateLimit.Enabled = util.GetEnvBool("CLASSIFY_RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerSecond = util.GetEnvInt("CLASSIFY_RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = util.GetEnvInt("CLASSIFY_RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Security.Enabled = util.GetEnvBool("CLASSIFY_SECURITY_HEADERS_ENABLED", c.Security.Enabled)
	c.Security.HSTSMaxAge = util.GetEnvInt("CLASSIFY_HSTS_MAX_AGE", c.Security.HSTSMaxAge)
	c.Security.ContentSecurityPolicy = util.GetEnv("CLASSIFY_CSP", c.Security.ContentSecurityPolicy)

	c.Metrics.Enabled = util.GetEnvBool("CLASSIFY_METRICS_ENABLED", c.Metrics.Enabled)
	c.Metrics.Port = util.GetEnvInt("CLASSIFY_METRICS_PORT", c.Metrics.Port)
	c.Metrics.Path = util.GetEnv("CLASSIFY_METRICS_PATH", c.Metrics.Path)

	c.Identity.UserID = util.GetEnv("CLASSIFY_USER_ID", c.Identity.UserID)
	c.Identity.Email = util.GetEnv("CLASSIFY_EMAIL", c.Identity.Email)
	c.Identity.RollNumber = util.GetEnv("CLASSIFY_ROLL_NUMBER", c.Identity.RollNumber)
}

// Validate checks the configuration for invalid or missing values.
func (c *Config) Validate() error {
	if err := util.ValidatePort(c.Server.Port); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := util.ValidatePositiveInt(c.Server.MaxItems, "maxItems"); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Server.MaxRequestBodySize < 0 {
		return fmt.Errorf("server: maxRequestBodySize cannot be negative")
	}

	if err := util.ValidateLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := util.ValidateLogFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.RateLimit.Enabled {
		if err := util.ValidatePositiveInt(c.RateLimit.RequestsPerSecond, "requestsPerSecond"); err != nil {
			return fmt.Errorf("rateLimit: %w", err)
		}
		if err := util.ValidatePositiveInt(c.RateLimit.Burst, "burst"); err != nil {
			return fmt.Errorf("rateLimit: %w", err)
		}
	}

	if c.Metrics.Enabled {
		if err := util.ValidatePort(c.Metrics.Port); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		if c.Metrics.Port == c.Server.Port {
			return fmt.Errorf("metrics: port %d conflicts with server port", c.Metrics.Port)
		}
	}

	if err := util.ValidateNonEmpty(c.Identity.UserID, "identity.userId"); err != nil {
		return err
	}
	if err := util.ValidateEmail(c.Identity.Email); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := util.ValidateNonEmpty(c.Identity.RollNumber, "identity.rollNumber"); err != nil {
		return err
	}

	return nil
}
