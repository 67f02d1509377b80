package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/anirbansen/framap/internal/api"
	"github.com/anirbansen/framap/internal/model"
)

// Authenticator is the slice of the network client the store needs for the
// credential exchange.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*api.AuthResponse, error)
}

// Network is the client surface the store attaches to: it supplies the
// default bearer credential and receives authorization rejections.
type Network interface {
	SetTokenProvider(api.TokenProvider)
	OnUnauthorized(func())
}

// snapshot is the durable session state. The shape matches what the store
// persists on every transition: exactly the user/token/authenticated triple,
// nothing else.
type snapshot struct {
	State struct {
		User            *model.UserProfile `json:"user"`
		Token           string             `json:"token"`
		IsAuthenticated bool               `json:"isAuthenticated"`
	} `json:"state"`
}

// Store holds the client's one live session. It starts empty, hydrates from
// the snapshot file if one exists, and mutates only through Login, Register,
// Logout and HandleUnauthorized. All methods are safe for concurrent use;
// an invalidation racing an in-flight fetch always wins because fetches
// never write session state.
type Store struct {
	path string
	auth Authenticator
	log  zerolog.Logger

	mu            sync.Mutex
	user          *model.UserProfile
	token         string
	authenticated bool
	clearFns      []func()
}

// New creates a store persisting to path and hydrates any prior session.
// An absent or corrupt snapshot means no session; hydration never fails.
func New(path string, auth Authenticator, log zerolog.Logger) *Store {
	s := &Store{path: path, auth: auth, log: log}
	s.hydrate()
	return s
}

// Attach registers the store with the network client: token reads are
// fail-open (no session, no header), and any authorization rejection
// forces invalidation. Called once at startup.
func (s *Store) Attach(n Network) {
	n.SetTokenProvider(s.Token)
	n.OnUnauthorized(s.HandleUnauthorized)
}

// Login exchanges credentials for a session. On failure the state is left
// untouched and the error is the client's *api.AuthenticationError.
func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

// Register creates an account and starts a session with the returned token.
// Same contract as Login.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	resp, err := s.auth.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

func (s *Store) establish(resp *api.AuthResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := resp.User
	s.user = &user
	s.token = resp.AccessToken
	s.authenticated = true

	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.log.Info().Str("username", user.Username).Msg("session established")
	return nil
}

// Logout clears the session. Always succeeds and is idempotent; a persist
// failure is logged, never surfaced.
func (s *Store) Logout() {
	s.clear("logout")
}

// HandleUnauthorized is the forced-invalidation path: the network layer
// calls it when any request comes back authorization-rejected. Idempotent
// and safe to trigger from multiple concurrent requests.
func (s *Store) HandleUnauthorized() {
	s.clear("authorization rejected")
}

// OnClear registers fn to run after every session teardown, whether by
// logout or forced invalidation. The response cache registers here so a
// cleared session leaves no cached data behind on disk.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearFns = append(s.clearFns, fn)
}

func (s *Store) clear(reason string) {
	s.mu.Lock()

	wasAuthenticated := s.authenticated
	s.user = nil
	s.token = ""
	s.authenticated = false

	if err := s.persistLocked(); err != nil {
		s.log.Error().Err(err).Msg("failed to persist cleared session")
	}
	if wasAuthenticated {
		s.log.Info().Str("reason", reason).Msg("session cleared")
	}

	fns := make([]func(), len(s.clearFns))
	copy(fns, s.clearFns)
	s.mu.Unlock()

	// Callbacks run outside the lock so they may call back into the store.
	for _, fn := range fns {
		fn()
	}
}

// IsAuthenticated reports whether both a user and a token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// User returns a copy of the current profile, or nil.
func (s *Store) User() *model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) hydrate() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Debug().Err(err).Str("path", s.path).Msg("ignoring corrupt session snapshot")
		return
	}

	// The invariant holds regardless of what the file claims: authenticated
	// requires both user and token, and a logged-out snapshot restores
	// nothing.
	if !snap.State.IsAuthenticated || snap.State.User == nil || snap.State.Token == "" {
		return
	}

	s.user = snap.State.User
	s.token = snap.State.Token
	s.authenticated = true
	s.log.Debug().Str("username", snap.State.User.Username).Msg("session hydrated")
}

func (s *Store) persistLocked() error {
	var snap snapshot
	snap.State.User = s.user
	snap.State.Token = s.token
	snap.State.IsAuthenticated = s.authenticated

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
