package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/helmcraft/storefront/core/logger"
)

// State is the session lifecycle phase.
type State string

const (
	// StateLoading is the initial state, held until the first CheckAuth resolves.
	StateLoading State = "loading"
	// StateAnonymous means no valid credential is held.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a user profile and access token are held.
	StateAuthenticated State = "authenticated"
)

// API is the slice of the backend client the session store depends on.
type API interface {
	Get(ctx context.Context, path string, result any) error
	Post(ctx context.Context, path string, body, result any) error
}

// Store owns the authenticated user and drives the
// loading → anonymous/authenticated state machine. It is an explicit state
// container: construct one at the application root and pass it by reference.
type Store struct {
	mu    sync.RWMutex
	state State
	user  *User

	client API
	creds  *Credentials
	log    *slog.Logger

	// checkGroup deduplicates concurrent CheckAuth calls; rehydrated guards
	// the at-most-once-per-lifetime network check on startup.
	checkGroup singleflight.Group
	rehydrated atomic.Bool

	signOutMu        sync.Mutex
	signOutListeners []func(ctx context.Context)
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger. Logging is off by default.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore creates a session store in the loading state.
func NewStore(client API, creds *Credentials, opts ...StoreOption) (*Store, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	if creds == nil {
		return nil, ErrMissingCredentials
	}

	s := &Store{
		state:  StateLoading,
		client: client,
		creds:  creds,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the authenticated profile, or false when anonymous.
func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a valid user and token pair is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.user != nil
}

// Credentials exposes the shared credential holder.
func (s *Store) Credentials() *Credentials {
	return s.creds
}

// Rehydrate restores the session at process start: it reads the persisted
// credential subset, then settles state with one authoritative CheckAuth.
// Persisted data alone is never treated as authoritative. Safe to call more
// than once; the network check runs at most once per store lifetime.
func (s *Store) Rehydrate(ctx context.Context) error {
	if err := s.creds.Load(ctx); err != nil {
		return err
	}
	if !s.rehydrated.CompareAndSwap(false, true) {
		return nil
	}
	return s.CheckAuth(ctx)
}

// CheckAuth resolves the session against the backend: without a stored
// token it settles to anonymous; with one it fetches the profile, clearing
// the token on failure. Concurrent callers share a single request.
func (s *Store) CheckAuth(ctx context.Context) error {
	_, err, _ := s.checkGroup.Do("check-auth", func() (any, error) {
		if s.creds.Token(ctx) == "" {
			s.setAnonymous()
			return nil, nil
		}

		var user User
		if err := s.client.Get(ctx, "/auth/me", &user); err != nil {
			s.log.Debug("auth check failed, clearing credentials",
				logger.Component("session"), logger.Error(err))
			if clearErr := s.creds.Clear(ctx); clearErr != nil {
				s.log.Warn("failed to clear credentials",
					logger.Component("session"), logger.Error(clearErr))
			}
			s.setAnonymous()
			return nil, nil
		}

		s.setAuthenticated(user)
		return nil, nil
	})
	return err
}

// authPayload is the login/register response shape.
type authPayload struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Login authenticates with email and password.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	var payload authPayload
	req := map[string]string{"email": email, "password": password}
	if err := s.client.Post(ctx, "/auth/login", req, &payload); err != nil {
		return User{}, err
	}
	if err := s.SetUser(ctx, payload.User, payload.AccessToken); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// RegisterRequest carries the sign-up form fields.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Register creates an account and signs the new user in.
func (s *Store) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var payload authPayload
	if err := s.client.Post(ctx, "/auth/register", req, &payload); err != nil {
		return User{}, err
	}
	if err := s.SetUser(ctx, payload.User, payload.AccessToken); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// ForgotPassword requests a password reset email.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	return s.client.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (s *Store) ResetPassword(ctx context.Context, token, password string) error {
	req := map[string]string{"token": token, "password": password}
	return s.client.Post(ctx, "/auth/reset-password", req, nil)
}

// SetUser persists the token and transitions to authenticated
// unconditionally. Used after login and registration.
func (s *Store) SetUser(ctx context.Context, user User, token string) error {
	if err := s.creds.SetToken(ctx, token); err != nil {
		return err
	}
	s.setAuthenticated(user)
	return nil
}

// Logout notifies the server best-effort, then clears local state. The
// local sign-out always succeeds even when the server call fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		s.log.Debug("server logout failed, proceeding with local sign-out",
			logger.Component("session"), logger.Error(err))
	}

	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn("failed to clear credentials",
			logger.Component("session"), logger.Error(err))
	}
	s.setAnonymous()
	s.fireSignOut(ctx)
}

// UpdateUser shallow-merges the patch into the current profile.
// No-op when unauthenticated: there is no user to merge into.
func (s *Store) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.user == nil {
		return
	}
	patch.apply(s.user)
}

// OnSignOut registers a listener invoked after logout or a terminal auth
// failure. The cart store uses this to reset its fetch guard.
func (s *Store) OnSignOut(fn func(ctx context.Context)) {
	if fn == nil {
		return
	}
	s.signOutMu.Lock()
	defer s.signOutMu.Unlock()
	s.signOutListeners = append(s.signOutListeners, fn)
}

// HandleAuthExpired is wired to the API client's auth-expired hook. The
// client has already cleared the credentials; this drops the in-memory user
// and fans the sign-out event out to listeners.
func (s *Store) HandleAuthExpired(ctx context.Context) {
	s.setAnonymous()
	s.fireSignOut(ctx)
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) setAuthenticated(user User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &user
	s.mu.Unlock()
}

func (s *Store) fireSignOut(ctx context.Context) {
	s.signOutMu.Lock()
	listeners := append(([]func(context.Context))(nil), s.signOutListeners...)
	s.signOutMu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}
