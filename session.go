package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/leafkeeper/leafkeeper-client/internal/api"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// SessionState is the authentication lifecycle of a Session.
type SessionState int

const (
	// StateUnknown holds until the persisted user has been read.
	StateUnknown SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Session owns the signed-in user. It is the only writer of the persisted
// user record and session token; consumers read User, State and
// IsAuthenticated.
type Session struct {
	c *Client

	mu    sync.RWMutex
	state SessionState
	user  *User
}

// NewSession returns a session in StateUnknown. Call Restore before relying
// on State.
func NewSession(c *Client) *Session {
	return &Session{c: c}
}

// Restore reads the persisted user once. Later calls return the current
// state without touching storage.
func (s *Session) Restore(ctx context.Context) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnknown {
		return s.state
	}
	if u := s.c.users.Load(ctx); u != nil {
		s.user = u
		s.state = StateAuthenticated
	} else {
		s.state = StateUnauthenticated
	}
	log.Debug().Str("state", s.state.String()).Msg("session restored")
	return s.state
}

// Login authenticates and persists the token and user. On any failure
// nothing is persisted and the state is left as it was.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	res, err := api.Login(ctx, s.c.api, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, res)
}

// Register creates an account and signs it in. An empty Role is sent as
// DefaultRole.
func (s *Session) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	res, err := api.Register(ctx, s.c.api, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, res)
}

func (s *Session) establish(ctx context.Context, res *types.AuthResult) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.c.tokens.SetToken(ctx, res.Token)
	if err := s.c.users.Save(ctx, res.User); err != nil {
		s.c.tokens.RemoveToken(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("persist user: %w", err)
	}
	u := res.User
	s.user = &u
	s.state = StateAuthenticated
	log.Info().Str("user_id", u.ID).Msg("signed in")
	return s.userLocked(), nil
}

// Logout asks the user service to end the session, then clears the local
// user and token whatever the remote outcome.
func (s *Session) Logout(ctx context.Context) {
	if err := api.Logout(ctx, s.c.api); err != nil {
		log.Warn().Err(err).Msg("remote logout failed; clearing local session anyway")
	}

	local := context.WithoutCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.c.users.Clear(local); err != nil {
		log.Warn().Err(err).Msg("failed to clear stored user")
	}
	s.c.tokens.RemoveToken(local)
	s.user = nil
	s.state = StateUnauthenticated
	log.Info().Msg("signed out")
}

// Refresh re-fetches the signed-in user's profile and persists it.
func (s *Session) Refresh(ctx context.Context) (*User, error) {
	current := s.User()
	if current == nil {
		return nil, ErrNotAuthenticated
	}
	fresh, err := api.GetUser(ctx, s.c.api, current.ID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != current.ID {
		// Signed out or switched accounts meanwhile.
		return nil, ErrNotAuthenticated
	}
	if err := s.c.users.Save(ctx, *fresh); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	s.user = fresh
	return s.userLocked(), nil
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked()
}

// userLocked requires s.mu.
func (s *Session) userLocked() *User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}
