// Package config loads SDK and CLI settings from LEAFKEEPER_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultDiagnosisURL is used when LEAFKEEPER_DIAGNOSIS_URL is unset.
const DefaultDiagnosisURL = "http://localhost:8000"

// Platform names the device target the client runs on.
type Platform string

const (
	PlatformUnknown Platform = ""
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
)

// Config holds the configuration for the client.
// Environment variables are parsed with the LEAFKEEPER_ prefix,
// e.g. LEAFKEEPER_API_URL, LEAFKEEPER_PLATFORM.
type Config struct {
	APIURL       string   `envconfig:"API_URL" default:"http://localhost:3000"`
	DiagnosisURL string   `envconfig:"DIAGNOSIS_URL" default:"http://localhost:8000"`
	Platform     Platform `envconfig:"PLATFORM" default:""`

	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"1"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	DataDir  string `envconfig:"DATA_DIR" default:""`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// New parses the environment and resolves platform-specific URLs.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("LEAFKEEPER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("diagnosis_url", cfg.DiagnosisURL).
		Str("platform", string(cfg.Platform)).
		Dur("http_timeout", cfg.HTTPTimeout).
		Int("retry_max_attempts", cfg.RetryMaxAttempts).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Resolve validates the config and rewrites loopback URLs for the platform.
func (c *Config) Resolve() error {
	switch c.Platform {
	case PlatformUnknown, PlatformAndroid, PlatformIOS, PlatformWeb:
	default:
		return fmt.Errorf("unsupported PLATFORM: %s", c.Platform)
	}
	if c.RetryMaxAttempts < 1 {
		c.RetryMaxAttempts = 1
	}
	if c.DiagnosisURL == "" {
		c.DiagnosisURL = DefaultDiagnosisURL
	}
	api, err := ResolveBaseURL(c.APIURL, c.Platform)
	if err != nil {
		return fmt.Errorf("API_URL: %w", err)
	}
	diag, err := ResolveBaseURL(c.DiagnosisURL, c.Platform)
	if err != nil {
		return fmt.Errorf("DIAGNOSIS_URL: %w", err)
	}
	c.APIURL, c.DiagnosisURL = api, diag
	return nil
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
