package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/leafkeeper/leafkeeper-client/internal/api"
	"github.com/leafkeeper/leafkeeper-client/internal/config"
	"github.com/leafkeeper/leafkeeper-client/internal/store"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL      string
	diagnosisURL string
	platform     config.Platform
	http         *http.Client
	timeout      time.Duration // applied after options; 0 keeps http.Timeout
	kv           store.KV

	debug         bool
	retryAttempts int
	retryBackoff  time.Duration

	api    *api.Requester
	doctor *api.Requester

	tokens    *store.TokenStore
	users     *store.UserStore
	bookmarks *store.Bookmarks
	recent    *store.RecentSearches

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the gateway at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:       baseURL,
		diagnosisURL:  config.DefaultDiagnosisURL,
		http:          &http.Client{Timeout: 30 * time.Second},
		retryAttempts: 1,
		retryBackoff:  200 * time.Millisecond,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	if c.kv == nil {
		c.kv = store.NewMemory()
	}

	var err error
	if c.baseURL, err = config.ResolveBaseURL(c.baseURL, c.platform); err != nil {
		panic(err)
	}
	if c.diagnosisURL, err = config.ResolveBaseURL(c.diagnosisURL, c.platform); err != nil {
		panic(err)
	}

	c.tokens = store.NewTokenStore(c.kv)
	c.users = store.NewUserStore(c.kv)
	c.bookmarks = store.NewBookmarks(c.kv)
	c.recent = store.NewRecentSearches(c.kv)

	c.wrapTransport()

	c.api = api.NewRequester(c.http, c.baseURL)
	c.doctor = api.NewRequester(c.http, c.diagnosisURL)
	return c
}

// NewFromConfig builds a Client from environment-derived settings. Options
// are applied after the ones derived from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) *Client {
	base := []Option{
		WithPlatform(string(cfg.Platform)),
		WithDiagnosisURL(cfg.DiagnosisURL),
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithRetry(cfg.RetryMaxAttempts),
		WithDebugLogging(cfg.Debug),
	}
	return New(cfg.APIURL, append(base, opts...)...)
}

// wrapTransport installs, from the inside out: debug logging (when
// enabled), metrics, retries (when enabled) and token attachment.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base}
	}
	var rt http.RoundTripper = &metricsTransport{base: base}
	if c.retryAttempts > 1 {
		rt = &retryTransport{base: rt, maxAttempts: c.retryAttempts, initial: c.retryBackoff}
	}
	c.http.Transport = &tokenTransport{base: rt, tokens: c.tokens}
}

// tokenTransport reads the stored token on every request and attaches it as
// a bearer token. It also stamps a request id.
type tokenTransport struct {
	base   http.RoundTripper
	tokens *store.TokenStore
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	if tok := t.tokens.Token(req.Context()); tok != "" {
		cloned.Header.Set("Authorization", "Bearer "+tok)
	}
	if cloned.Header.Get("X-Request-Id") == "" {
		cloned.Header.Set("X-Request-Id", uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}

// BaseURL returns the resolved gateway URL.
func (c *Client) BaseURL() string { return c.baseURL }

// DiagnosisURL returns the resolved diagnosis service URL.
func (c *Client) DiagnosisURL() string { return c.diagnosisURL }

// Close releases the key-value store when it holds resources (e.g. SQLite).
// Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if closer, ok := c.kv.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// --------------------------------------------------------------------
// Users
// --------------------------------------------------------------------

// GetUser fetches a user profile.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	return api.GetUser(ctx, c.api, userID)
}

// --------------------------------------------------------------------
// Plant catalog
// --------------------------------------------------------------------

// ListPlantSpecies fetches one page of the plant catalog.
func (c *Client) ListPlantSpecies(ctx context.Context, q SpeciesListQuery) (*SpeciesPage, error) {
	return api.ListPlantSpecies(ctx, c.api, q)
}

// GetPlantSpeciesDetails fetches one catalog entry.
func (c *Client) GetPlantSpeciesDetails(ctx context.Context, id int, params Params) (*PlantSpeciesDetails, error) {
	return api.GetPlantSpeciesDetails(ctx, c.api, id, params)
}

// --------------------------------------------------------------------
// User plants
// --------------------------------------------------------------------

// CreateUserPlant uploads a new plant, with an optional image.
func (c *Client) CreateUserPlant(ctx context.Context, req CreateUserPlantRequest) (*UserPlant, error) {
	return api.CreateUserPlant(ctx, c.api, req)
}

// GetUserPlant fetches one of the user's plants.
func (c *Client) GetUserPlant(ctx context.Context, id string) (*UserPlant, error) {
	return api.GetUserPlant(ctx, c.api, id)
}

// ListUserPlants fetches all of the user's plants.
func (c *Client) ListUserPlants(ctx context.Context) ([]UserPlant, error) {
	return api.ListUserPlants(ctx, c.api)
}

// SearchUserPlants filters the user's plants.
func (c *Client) SearchUserPlants(ctx context.Context, q UserPlantSearchQuery) ([]UserPlant, error) {
	return api.SearchUserPlants(ctx, c.api, q)
}

// UpdateUserPlant applies a partial update.
func (c *Client) UpdateUserPlant(ctx context.Context, id string, req UpdateUserPlantRequest) (*UserPlant, error) {
	return api.UpdateUserPlant(ctx, c.api, id, req)
}

// DeleteUserPlant removes a plant.
func (c *Client) DeleteUserPlant(ctx context.Context, id string) error {
	return api.DeleteUserPlant(ctx, c.api, id)
}

// --------------------------------------------------------------------
// Reminders
// --------------------------------------------------------------------

// CreateReminder creates a reminder.
func (c *Client) CreateReminder(ctx context.Context, req CreateReminderRequest) (*Reminder, error) {
	return api.CreateReminder(ctx, c.api, req)
}

// GetReminder fetches one reminder.
func (c *Client) GetReminder(ctx context.Context, id string) (*Reminder, error) {
	return api.GetReminder(ctx, c.api, id)
}

// ListReminders fetches all reminders.
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	return api.ListReminders(ctx, c.api)
}

// ListDueReminders fetches reminders due within window.
func (c *Client) ListDueReminders(ctx context.Context, window time.Duration) ([]Reminder, error) {
	return api.ListDueReminders(ctx, c.api, window)
}

// UpdateReminder applies a partial update.
func (c *Client) UpdateReminder(ctx context.Context, id string, req UpdateReminderRequest) (*Reminder, error) {
	return api.UpdateReminder(ctx, c.api, id, req)
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return api.DeleteReminder(ctx, c.api, id)
}

// --------------------------------------------------------------------
// Proxies
// --------------------------------------------------------------------

// CreateProxy adds a proxy contact.
func (c *Client) CreateProxy(ctx context.Context, req CreateProxyRequest) (*ProxyContact, error) {
	return api.CreateProxy(ctx, c.api, req)
}

// GetProxy fetches one proxy contact; (nil, nil) when it does not exist.
func (c *Client) GetProxy(ctx context.Context, id string) (*ProxyContact, error) {
	return api.GetProxy(ctx, c.api, id)
}

// ListProxies fetches all proxy contacts.
func (c *Client) ListProxies(ctx context.Context) ([]ProxyContact, error) {
	return api.ListProxies(ctx, c.api)
}

// SearchProxies filters proxy contacts.
func (c *Client) SearchProxies(ctx context.Context, q ProxySearchQuery) ([]ProxyContact, error) {
	return api.SearchProxies(ctx, c.api, q)
}

// UpdateProxy applies a partial update.
func (c *Client) UpdateProxy(ctx context.Context, id string, req UpdateProxyRequest) (*ProxyContact, error) {
	return api.UpdateProxy(ctx, c.api, id, req)
}

// DeleteProxy removes a proxy contact.
func (c *Client) DeleteProxy(ctx context.Context, id string) error {
	return api.DeleteProxy(ctx, c.api, id)
}

// --------------------------------------------------------------------
// Plant doctor
// --------------------------------------------------------------------

// Diagnose uploads a plant photo to the diagnosis service.
func (c *Client) Diagnose(ctx context.Context, image File) (*DiagnosisResult, error) {
	return api.Diagnose(ctx, c.doctor, image)
}
