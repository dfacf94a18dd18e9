// Package module defines the feature contract used by storefront
// composition and the shared runtime handed to every module.
package module

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/platform/money"
	"github.com/louisbranch/storefront/internal/services/catalog/navigation"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"go.uber.org/zap"
)

// Principal is the session-resolved identity of a request.
type Principal struct {
	SessionID string
	UserID    string
	Username  string
	Name      string
	Admin     bool
}

// SignedIn reports whether a user is attached to the session.
func (p Principal) SignedIn() bool {
	return p.UserID != ""
}

// Viewer contains header chrome data for rendered pages.
type Viewer struct {
	DisplayName string
	SignedIn    bool
	IsAdmin     bool
	CartCount   int
}

// Sessions resolves and mutates the browser session of a request.
type Sessions interface {
	Principal(r *http.Request) Principal
	// Ensure returns the request's session, creating one and setting the
	// cookie when absent.
	Ensure(w http.ResponseWriter, r *http.Request) (Principal, error)
	SignIn(w http.ResponseWriter, r *http.Request, user storage.User) error
	SignOut(w http.ResponseWriter, r *http.Request) error
	Viewer(r *http.Request) Viewer
}

// Runtime carries process-wide collaborators shared by modules.
type Runtime struct {
	Navigation   navigation.Snapshot
	Sessions     Sessions
	Logger       *zap.Logger
	SchemePolicy requestmeta.SchemePolicy
	Money        money.Formatter
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by storefront composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
