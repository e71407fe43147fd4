// Package devmode runs an in-memory stand-in for the plant-care gateway so
// the SDK and CLI can be exercised without the real backend services.
//
// It speaks the same loose wire shapes as the production services (Mongo
// "_id", snake_case keys, {"message": "... notfound"} 404s) and issues
// HS256 tokens signed with SigningKey.
package devmode

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// SigningKey signs development tokens. It is intentionally obvious and
// must never be used in production.
const SigningKey = "LOCAL_DEV_MODE_NOT_FOR_PRODUCTION"

// SpeciesPageSize is the number of catalog entries per species-list page.
const SpeciesPageSize = 30

// Gateway holds all state in memory; it is safe for concurrent use.
type Gateway struct {
	key []byte
	now func() time.Time

	mu        sync.Mutex
	accounts  map[string]*account
	byEmail   map[string]string
	revoked   map[string]bool
	plants    map[string]*plantRecord
	reminders map[string]*reminderRecord
	proxies   map[string]*proxyRecord
	species   []types.PlantSpeciesDetails
	seq       int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSigningKey replaces SigningKey.
func WithSigningKey(key []byte) Option {
	return func(g *Gateway) { g.key = key }
}

// WithClock sets the time source used for timestamps and due windows.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// New returns a gateway seeded with a small species catalog.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		key:       []byte(SigningKey),
		now:       time.Now,
		accounts:  map[string]*account{},
		byEmail:   map[string]string{},
		revoked:   map[string]bool{},
		plants:    map[string]*plantRecord{},
		reminders: map[string]*reminderRecord{},
		proxies:   map[string]*proxyRecord{},
		species:   seedSpecies(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handler routes every gateway path. The diagnosis service's /doctor/predict
// is served too, so one Gateway can stand in for both base URLs.
func (g *Gateway) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/login/auth/login", g.login).Methods(http.MethodPost)
	r.HandleFunc("/login/register", g.register).Methods(http.MethodPost)
	r.HandleFunc("/login/auth/logout", g.authed(g.logout)).Methods(http.MethodPost)
	r.HandleFunc("/user/users/{id}", g.authed(g.getUser)).Methods(http.MethodGet)

	// Catalog
	r.HandleFunc("/plants/v2/species-list", g.listSpecies).Methods(http.MethodGet)
	r.HandleFunc("/plants/v2/species/details/{id:[0-9]+}", g.speciesDetails).Methods(http.MethodGet)

	// User plants
	r.HandleFunc("/user-plant/v1/userPlant/create", g.authed(g.createPlant)).Methods(http.MethodPost)
	r.HandleFunc("/user-plant/v1/userPlant", g.authed(g.getPlant)).Methods(http.MethodGet)
	r.HandleFunc("/user-plant/v1/userPlant", g.authed(g.updatePlant)).Methods(http.MethodPut)
	r.HandleFunc("/user-plant/v1/userPlant", g.authed(g.deletePlant)).Methods(http.MethodDelete)
	r.HandleFunc("/user-plant/v1/userPlants", g.authed(g.listPlants)).Methods(http.MethodGet)
	r.HandleFunc("/user-plant/search", g.authed(g.searchPlants)).Methods(http.MethodGet)

	// Reminders
	rem := r.PathPrefix("/reminder/reminder/v1").Subrouter()
	rem.HandleFunc("/reminder/create", g.authed(g.createReminder)).Methods(http.MethodPost)
	rem.HandleFunc("/reminder", g.authed(g.getReminder)).Methods(http.MethodGet)
	rem.HandleFunc("/reminder", g.authed(g.updateReminder)).Methods(http.MethodPut)
	rem.HandleFunc("/reminder/{id}", g.authed(g.deleteReminder)).Methods(http.MethodDelete)
	rem.HandleFunc("/reminders", g.authed(g.listReminders)).Methods(http.MethodGet)
	rem.HandleFunc("/reminders/due", g.authed(g.dueReminders)).Methods(http.MethodGet)

	// Proxies
	px := r.PathPrefix("/proxy/v1").Subrouter()
	px.HandleFunc("/proxy/create", g.authed(g.createProxy)).Methods(http.MethodPost)
	px.HandleFunc("/proxy/search", g.authed(g.searchProxies)).Methods(http.MethodGet)
	px.HandleFunc("/proxy/{id}", g.authed(g.getProxy)).Methods(http.MethodGet)
	px.HandleFunc("/proxy/{id}", g.authed(g.updateProxy)).Methods(http.MethodPut)
	px.HandleFunc("/proxy/{id}", g.authed(g.deleteProxy)).Methods(http.MethodDelete)
	px.HandleFunc("/proxys", g.authed(g.listProxies)).Methods(http.MethodGet)

	// Diagnosis
	r.HandleFunc("/doctor/predict", g.predict).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route notfound")
	})

	return recoverer(r)
}

// nextSeq orders records by insertion; callers hold g.mu.
func (g *Gateway) nextSeq() int {
	g.seq++
	return g.seq
}
