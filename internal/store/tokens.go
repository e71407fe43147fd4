package store

import (
	"context"

	"github.com/rs/zerolog/log"
)

// TokenStore holds the bearer token. Storage failures are logged and
// swallowed: a token that cannot be read is treated as no token.
type TokenStore struct {
	kv KV
}

// NewTokenStore wraps kv.
func NewTokenStore(kv KV) *TokenStore {
	return &TokenStore{kv: kv}
}

// Token returns the stored token or "".
func (s *TokenStore) Token(ctx context.Context) string {
	v, ok, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		log.Warn().Err(err).Msg("read auth token")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// SetToken replaces the stored token.
func (s *TokenStore) SetToken(ctx context.Context, token string) {
	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		log.Warn().Err(err).Msg("write auth token")
	}
}

// RemoveToken deletes the stored token.
func (s *TokenStore) RemoveToken(ctx context.Context) {
	if err := s.kv.Delete(ctx, KeyToken); err != nil {
		log.Warn().Err(err).Msg("remove auth token")
	}
}
