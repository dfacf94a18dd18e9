// Package pages serves admin CRUD and ordering for content pages.
package pages

import (
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module provides admin page routes.
type Module struct {
	store   Store
	runtime module.Runtime
}

// New returns an admin pages module.
func New(store Store, runtime module.Runtime) Module {
	return Module{store: store, runtime: runtime}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin-pages" }

// Mount wires admin page handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, fmt.Errorf("page store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.runtime), service: newService(m.store)})
	return module.Mount{Prefix: routepath.AdminPagesPrefix, Handler: mux}, nil
}
