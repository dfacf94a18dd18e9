// Package moduletest provides in-memory collaborators for storefront module
// handler tests.
package moduletest

import (
	"net/http"
	"sync"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
)

// Sessions is a module.Sessions that keeps one principal in memory.
type Sessions struct {
	mu        sync.Mutex
	principal module.Principal
	// NextSessionID is assigned by Ensure when no session exists.
	NextSessionID string
	SignedInAs    []string
	SignOuts      int
}

// NewSessions returns Sessions starting with principal.
func NewSessions(principal module.Principal) *Sessions {
	return &Sessions{principal: principal, NextSessionID: "sess-1"}
}

// Principal returns the current principal.
func (s *Sessions) Principal(*http.Request) module.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal
}

// Ensure assigns NextSessionID when the principal has no session.
func (s *Sessions) Ensure(http.ResponseWriter, *http.Request) (module.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal.SessionID == "" {
		s.principal.SessionID = s.NextSessionID
	}
	return s.principal, nil
}

// SignIn records user as signed in.
func (s *Sessions) SignIn(_ http.ResponseWriter, _ *http.Request, user storage.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal.SessionID == "" {
		s.principal.SessionID = s.NextSessionID
	}
	s.principal.UserID = user.ID
	s.principal.Username = user.Username
	s.principal.Name = user.Name
	s.principal.Admin = user.Admin
	s.SignedInAs = append(s.SignedInAs, user.Username)
	return nil
}

// SignOut clears the principal.
func (s *Sessions) SignOut(http.ResponseWriter, *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = module.Principal{}
	s.SignOuts++
	return nil
}

// Viewer derives header chrome from the principal.
func (s *Sessions) Viewer(r *http.Request) module.Viewer {
	principal := s.Principal(r)
	return module.Viewer{
		DisplayName: principal.Username,
		SignedIn:    principal.SignedIn(),
		IsAdmin:     principal.Admin,
	}
}

var _ module.Sessions = (*Sessions)(nil)
