// Package config loads the recognized configuration surface from a yaml
// file, SVCOPS_-prefixed environment variables, and built-in defaults, in
// increasing order of precedence for env over file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonwraymond/svcops/logx"
	"github.com/jonwraymond/svcops/resilience"
)

// envPrefix scopes environment overrides, e.g. SVCOPS_LOGGER_LEVEL.
const envPrefix = "SVCOPS"

// Config is the root configuration.
type Config struct {
	Service string        `mapstructure:"service"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Timeout TimeoutConfig `mapstructure:"timeout"`
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level          string         `mapstructure:"level"`
	Console        bool           `mapstructure:"console"`
	FilePath       string         `mapstructure:"file_path"`
	DefaultContext map[string]any `mapstructure:"default_context"`
}

// RetryConfig configures the retry executor.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	FailureThreshold    int           `mapstructure:"failure_threshold"`
	ResetTimeout        time.Duration `mapstructure:"reset_timeout"`
	HalfOpenProbeBudget int           `mapstructure:"half_open_probe_budget"`
}

// TimeoutConfig configures the timeout guard.
type TimeoutConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// Load reads configuration from the yaml file at path, merged with
// SVCOPS_-prefixed environment variables and defaults. An empty path skips
// the file and loads from env and defaults only; a named file that does not
// exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service", "svcops")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.console", true)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay", 100*time.Millisecond)
	v.SetDefault("retry.max_delay", 30*time.Second)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.reset_timeout", 30*time.Second)
	v.SetDefault("breaker.half_open_probe_budget", 1)
	v.SetDefault("timeout.duration", 5*time.Second)
}

// Validate checks the loaded values for internal consistency.
func (c *Config) Validate() error {
	var errs []error

	switch c.Logger.Level {
	case "error", "warn", "info", "debug", "trace":
	default:
		errs = append(errs, fmt.Errorf("logger.level: unknown level %q", c.Logger.Level))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts: must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseDelay < 0 {
		errs = append(errs, fmt.Errorf("retry.base_delay: must not be negative, got %v", c.Retry.BaseDelay))
	}
	if c.Retry.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("retry.multiplier: must be at least 1, got %g", c.Retry.Multiplier))
	}
	if c.Breaker.FailureThreshold < 1 {
		errs = append(errs, fmt.Errorf("breaker.failure_threshold: must be at least 1, got %d", c.Breaker.FailureThreshold))
	}
	if c.Breaker.HalfOpenProbeBudget < 1 {
		errs = append(errs, fmt.Errorf("breaker.half_open_probe_budget: must be at least 1, got %d", c.Breaker.HalfOpenProbeBudget))
	}
	if c.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("timeout.duration: must be positive, got %v", c.Timeout.Duration))
	}

	return errors.Join(errs...)
}

// BuildLogger constructs a logger from the logger section. The returned
// cleanup closes the file transport when one was opened; it is a no-op
// otherwise.
func (c *Config) BuildLogger() (*logx.Logger, func() error, error) {
	var transports []logx.Transport
	cleanup := func() error { return nil }

	if c.Logger.Console {
		transports = append(transports, logx.NewConsoleTransport(nil))
	}
	if c.Logger.FilePath != "" {
		ft, err := logx.NewFileTransport(c.Logger.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("logger.file_path: %w", err)
		}
		transports = append(transports, ft)
		cleanup = ft.Close
	}

	logger := logx.New(logx.Config{
		MinLevel:       logx.ParseLevel(c.Logger.Level),
		Service:        c.Service,
		Transports:     transports,
		DefaultContext: c.Logger.DefaultContext,
	})
	return logger, cleanup, nil
}

// RetryConfig converts the retry section into a resilience retry config.
func (c *Config) RetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts: c.Retry.MaxAttempts,
		BaseDelay:   c.Retry.BaseDelay,
		MaxDelay:    c.Retry.MaxDelay,
		Multiplier:  c.Retry.Multiplier,
	}
}

// BreakerConfig converts the breaker section into a circuit breaker config.
func (c *Config) BreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		FailureThreshold:    c.Breaker.FailureThreshold,
		ResetTimeout:        c.Breaker.ResetTimeout,
		HalfOpenProbeBudget: c.Breaker.HalfOpenProbeBudget,
	}
}
