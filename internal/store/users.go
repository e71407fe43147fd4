package store

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// UserStore persists the signed-in user record as JSON.
type UserStore struct {
	kv KV
}

// NewUserStore wraps kv.
func NewUserStore(kv KV) *UserStore {
	return &UserStore{kv: kv}
}

// Load returns the persisted user, or nil when absent or unreadable.
func (s *UserStore) Load(ctx context.Context) *types.User {
	var u types.User
	ok, err := getJSON(ctx, s.kv, KeyUser, &u)
	if err != nil {
		log.Warn().Err(err).Msg("read current user")
		return nil
	}
	if !ok || u.ID == "" {
		return nil
	}
	return &u
}

// Save persists u.
func (s *UserStore) Save(ctx context.Context, u types.User) error {
	return setJSON(ctx, s.kv, KeyUser, u)
}

// Clear removes the persisted user.
func (s *UserStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyUser)
}
