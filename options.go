package client

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/leafkeeper/leafkeeper-client/internal/config"
)

// Option configures a Client during construction in New.
//
// Options are applied before the transport chain is installed, so the
// token, retry, metrics and debug wrappers always end up around whatever
// transport the options leave in place.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout bounds
// the total time spent on a single HTTP request. The value must be greater
// than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient bases the SDK on a copy of hc. Its Transport becomes the
// innermost transport of the chain; hc itself is never modified, so it can
// be shared between clients.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging logs each request/response when enabled is true.
//
// Do not enable this option in production environments: the bearer token is
// redacted but request and response bodies are logged as sent.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}

// WithStore sets the key-value store that holds the session token, current
// user, bookmarks and recent searches. Defaults to an in-memory store.
func WithStore(kv KeyValueStore) Option {
	return func(c *Client) error {
		if kv == nil {
			return fmt.Errorf("store cannot be nil")
		}
		c.kv = kv
		return nil
	}
}

// WithDiagnosisURL points plant diagnosis at a service other than
// config.DefaultDiagnosisURL.
func WithDiagnosisURL(u string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("diagnosis url cannot be empty")
		}
		c.diagnosisURL = u
		return nil
	}
}

// WithPlatform names the device target. On "android", loopback hosts in the
// base URLs are rewritten to the emulator's host alias.
func WithPlatform(p string) Option {
	return func(c *Client) error {
		platform := config.Platform(strings.ToLower(strings.TrimSpace(p)))
		switch platform {
		case config.PlatformUnknown, config.PlatformAndroid, config.PlatformIOS, config.PlatformWeb:
			c.platform = platform
			return nil
		}
		return fmt.Errorf("unsupported platform: %s", p)
	}
}

// WithRetry retries idempotent requests (GET, HEAD) up to maxAttempts times
// in total on network errors, 408, 429 and 5xx. 1 disables retries.
func WithRetry(maxAttempts int) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		c.retryAttempts = maxAttempts
		return nil
	}
}

// WithRetryBackoff sets the initial wait between retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("retry backoff must be > 0")
		}
		c.retryBackoff = d
		return nil
	}
}
