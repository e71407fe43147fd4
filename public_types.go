package client

import (
	"github.com/leafkeeper/leafkeeper-client/internal/diagnosis"
	"github.com/leafkeeper/leafkeeper-client/internal/schedule"
	"github.com/leafkeeper/leafkeeper-client/internal/store"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	LoginRequest           = types.LoginRequest
	RegisterRequest        = types.RegisterRequest
	File                   = types.File
	CreateUserPlantRequest = types.CreateUserPlantRequest
	UpdateUserPlantRequest = types.UpdateUserPlantRequest
	UserPlantSearchQuery   = types.UserPlantSearchQuery
	SpeciesListQuery       = types.SpeciesListQuery
	Params                 = types.Params
	CreateReminderRequest  = types.CreateReminderRequest
	UpdateReminderRequest  = types.UpdateReminderRequest
	CreateProxyRequest     = types.CreateProxyRequest
	UpdateProxyRequest     = types.UpdateProxyRequest
	ProxySearchQuery       = types.ProxySearchQuery

	// Domain entities
	User                = types.User
	UserPlant           = types.UserPlant
	Reminder            = types.Reminder
	ProxyContact        = types.ProxyContact
	PlantSpecies        = types.PlantSpecies
	PlantSpeciesDetails = types.PlantSpeciesDetails
	ImageDescriptor     = types.ImageDescriptor
	Category            = schedule.Category

	// Responses
	SpeciesPage     = types.SpeciesPage
	DiagnosisResult = diagnosis.Result

	// Local state
	KeyValueStore = store.KV
)

// Reminder categories inferred from reminder names.
const (
	CategoryWater     = schedule.CategoryWater
	CategoryFertilise = schedule.CategoryFertilise
	CategoryMist      = schedule.CategoryMist
	CategoryAll       = schedule.CategoryAll
)

// DefaultRole is sent on registration when none is given.
const DefaultRole = types.DefaultRole

// NewMemoryStore returns a process-local KeyValueStore.
func NewMemoryStore() KeyValueStore { return store.NewMemory() }

// OpenSQLiteStore opens (creating if needed) a SQLite-backed store at path.
// An empty path uses the default location under the data directory.
func OpenSQLiteStore(path string) (KeyValueStore, error) {
	if path == "" {
		p, err := store.DBPath("")
		if err != nil {
			return nil, err
		}
		path = p
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Bool returns a pointer to v, for optional request fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional request fields.
func Int(v int) *int { return &v }

// String returns a pointer to v, for optional request fields.
func String(v string) *string { return &v }
