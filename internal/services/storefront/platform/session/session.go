// Package session resolves the storefront session cookie into a request
// principal and manages session creation, sign-in and sign-out.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/sessioncookie"
	"go.uber.org/zap"
)

// DefaultTTL is used when the configured lifetime is not positive.
const DefaultTTL = 14 * 24 * time.Hour

// Store is the persistence the manager needs.
type Store interface {
	CreateSession(ctx context.Context, session storage.Session) error
	GetSession(ctx context.Context, id string, now time.Time) (storage.Session, bool, error)
	SetSessionUser(ctx context.Context, id, userID string) error
	GetUser(ctx context.Context, id string) (storage.User, error)
	CountCartItems(ctx context.Context, sessionID string) (int, error)
}

// Config configures a Manager.
type Config struct {
	Store        Store
	Codec        sessioncookie.Codec
	TTL          time.Duration
	SchemePolicy requestmeta.SchemePolicy
	Logger       *zap.Logger
	Now          func() time.Time
}

// Manager implements module.Sessions.
type Manager struct {
	store  Store
	codec  sessioncookie.Codec
	ttl    time.Duration
	policy requestmeta.SchemePolicy
	logger *zap.Logger
	now    func() time.Time
}

type stateKey struct{}

// state memoizes the principal for one request so handlers and the layout
// see the same identity after Ensure or SignIn.
type state struct {
	resolved  bool
	principal module.Principal
}

// NewManager validates cfg and builds a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{
		store:  cfg.Store,
		codec:  cfg.Codec,
		ttl:    cfg.TTL,
		policy: cfg.SchemePolicy,
		logger: cfg.Logger,
		now:    cfg.Now,
	}, nil
}

// Middleware installs per-request principal state.
func (m *Manager) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), stateKey{}, &state{})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Principal resolves the request's identity. Unreadable cookies, expired
// sessions and lookup failures all resolve to an anonymous principal.
func (m *Manager) Principal(r *http.Request) module.Principal {
	st := stateFrom(r)
	if st != nil && st.resolved {
		return st.principal
	}
	principal := m.resolve(r)
	if st != nil {
		st.resolved = true
		st.principal = principal
	}
	return principal
}

// Ensure returns the current session, creating one when needed.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (module.Principal, error) {
	principal := m.Principal(r)
	if principal.SessionID != "" {
		return principal, nil
	}
	sessionID, err := id.NewID()
	if err != nil {
		return module.Principal{}, err
	}
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	if err := m.store.CreateSession(r.Context(), storage.Session{ID: sessionID, CreatedAt: now, ExpiresAt: expiresAt}); err != nil {
		return module.Principal{}, fmt.Errorf("create session: %w", err)
	}
	token, err := m.codec.Encode(sessionID, expiresAt)
	if err != nil {
		return module.Principal{}, err
	}
	sessioncookie.Write(w, r, token, expiresAt, m.policy)
	principal = module.Principal{SessionID: sessionID}
	m.remember(r, principal)
	return principal, nil
}

// SignIn attaches user to the request's session.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, user storage.User) error {
	principal, err := m.Ensure(w, r)
	if err != nil {
		return err
	}
	if err := m.store.SetSessionUser(r.Context(), principal.SessionID, user.ID); err != nil {
		return fmt.Errorf("attach session user: %w", err)
	}
	m.remember(r, principalFor(principal.SessionID, user))
	return nil
}

// SignOut detaches any user from the session and clears the cookie.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	principal := m.Principal(r)
	if principal.SessionID != "" && principal.SignedIn() {
		if err := m.store.SetSessionUser(r.Context(), principal.SessionID, ""); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("detach session user: %w", err)
		}
	}
	sessioncookie.Clear(w, r, m.policy)
	m.remember(r, module.Principal{})
	return nil
}

// Viewer builds header chrome for the request.
func (m *Manager) Viewer(r *http.Request) module.Viewer {
	principal := m.Principal(r)
	viewer := module.Viewer{
		SignedIn: principal.SignedIn(),
		IsAdmin:  principal.Admin,
	}
	if principal.SignedIn() {
		viewer.DisplayName = principal.Username
	}
	if principal.SessionID != "" {
		count, err := m.store.CountCartItems(r.Context(), principal.SessionID)
		if err != nil {
			m.logger.Warn("count cart items", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		}
		viewer.CartCount = count
	}
	return viewer
}

// IsAdmin reports whether the request belongs to a signed-in admin.
func (m *Manager) IsAdmin(r *http.Request) bool {
	principal := m.Principal(r)
	return principal.SignedIn() && principal.Admin
}

func (m *Manager) resolve(r *http.Request) module.Principal {
	raw, ok := sessioncookie.Read(r)
	if !ok {
		return module.Principal{}
	}
	sessionID, err := m.codec.Decode(raw)
	if err != nil {
		return module.Principal{}
	}
	record, found, err := m.store.GetSession(r.Context(), sessionID, m.now())
	if err != nil {
		m.logger.Warn("load session", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		return module.Principal{}
	}
	if !found {
		return module.Principal{}
	}
	if record.UserID == "" {
		return module.Principal{SessionID: record.ID}
	}
	user, err := m.store.GetUser(r.Context(), record.UserID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("load session user", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		}
		return module.Principal{SessionID: record.ID}
	}
	return principalFor(record.ID, user)
}

func (m *Manager) remember(r *http.Request, principal module.Principal) {
	if st := stateFrom(r); st != nil {
		st.resolved = true
		st.principal = principal
	}
}

func principalFor(sessionID string, user storage.User) module.Principal {
	return module.Principal{
		SessionID: sessionID,
		UserID:    user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Admin:     user.Admin,
	}
}

func stateFrom(r *http.Request) *state {
	if r == nil {
		return nil
	}
	st, _ := r.Context().Value(stateKey{}).(*state)
	return st
}

var _ module.Sessions = (*Manager)(nil)
