// Package session tracks the operator's authentication lifecycle.
//
// A Manager starts in StateBootstrapping, resolves a stored token exactly
// once, and thereafter moves between StateAuthenticated and StateAnonymous
// through Login, Logout and Invalidate. Authentication is derived state:
// the session is authenticated exactly when it holds an account record.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/dashboard/client"
	"github.com/agriscan/platform/internal/dashboard/tokenstore"
)

// State is the session lifecycle phase.
type State string

const (
	// StateBootstrapping means the stored token has not been resolved yet.
	// Protected views must not render while the session is here.
	StateBootstrapping State = "bootstrapping"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Routes used for navigation side effects.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// Navigator receives navigation side effects from session transitions.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// AuthAPI is the slice of the platform client the session depends on.
type AuthAPI interface {
	Login(ctx context.Context, phone, password string) (string, *domain.User, error)
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*domain.User, error)
}

// Snapshot is a point-in-time view of the session.
type Snapshot struct {
	State State
	User  *domain.User
}

// IsAuthenticated reports whether the session holds an account. It is
// always derived from the user record, never stored separately.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil
}

// Loading reports whether the stored token is still being resolved.
func (s Snapshot) Loading() bool {
	return s.State == StateBootstrapping
}

// Manager owns the single session of a dashboard process.
type Manager struct {
	api    AuthAPI
	tokens tokenstore.Store
	nav    Navigator
	log    zerolog.Logger

	mu           sync.RWMutex
	state        State
	user         *domain.User
	bootstrapped bool
}

func NewManager(api AuthAPI, tokens tokenstore.Store, nav Navigator, log zerolog.Logger) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		nav:    nav,
		log:    log,
		state:  StateBootstrapping,
	}
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{State: m.state, User: m.user}
}

// Bootstrap resolves the stored token into a session, exactly once per
// process. A second call is a no-op. The session leaves StateBootstrapping
// on every path out of this method.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	if m.bootstrapped {
		m.mu.Unlock()
		return
	}
	m.bootstrapped = true
	m.mu.Unlock()

	token, err := m.tokens.Get()
	if err != nil {
		m.log.Warn().Err(err).Msg("token store unreadable, starting anonymous")
		m.setAnonymous()
		return
	}
	if token == "" {
		m.setAnonymous()
		return
	}

	user, err := m.api.Profile(ctx)
	if err != nil {
		// Any failed restore purges the token. A token that could not be
		// resolved is never trusted on a later run.
		if clearErr := m.tokens.Clear(); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("failed to clear token after failed restore")
		}
		var authErr *client.AuthError
		if errors.As(err, &authErr) {
			m.log.Info().Str("code", authErr.Code).Msg("stored token rejected")
		} else {
			m.log.Warn().Err(err).Msg("session restore failed")
		}
		m.setAnonymous()
		return
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.mu.Unlock()

	m.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("session restored")
}

// Login authenticates and, on success, stores the token and account record
// in one step, then navigates to the dashboard. On failure the session is
// left untouched.
func (m *Manager) Login(ctx context.Context, phone, password string) error {
	token, user, err := m.api.Login(ctx, phone, password)
	if err != nil {
		return err
	}

	if err := m.tokens.Set(token); err != nil {
		m.log.Warn().Err(err).Msg("token not persisted, session will not survive restart")
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.mu.Unlock()

	m.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("logged in")
	m.nav.Navigate(RouteDashboard)
	return nil
}

// Logout drops the session and stored token, then navigates to the login
// view. Safe to call in any state.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear token on logout")
	}

	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()

	m.log.Info().Msg("logged out")
	m.nav.Navigate(RouteLogin)
}

// Invalidate handles a mid-session credential rejection: the token is
// purged, the session becomes anonymous, and the operator lands on the
// login view. Call it when any API method returns *client.AuthError.
func (m *Manager) Invalidate() {
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear rejected token")
	}

	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()

	m.log.Info().Msg("session invalidated")
	m.nav.Navigate(RouteLogin)
}

// UpdateProfile applies a partial profile update and refreshes the held
// account record.
func (m *Manager) UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*domain.User, error) {
	user, err := m.api.UpdateProfile(ctx, update)
	if err != nil {
		var authErr *client.AuthError
		if errors.As(err, &authErr) {
			m.Invalidate()
		}
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user, nil
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()
}
