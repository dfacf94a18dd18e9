// Package categories serves admin CRUD for product categories.
package categories

import (
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module provides admin category routes.
type Module struct {
	store   Store
	runtime module.Runtime
}

// New returns an admin categories module.
func New(store Store, runtime module.Runtime) Module {
	return Module{store: store, runtime: runtime}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin-categories" }

// Mount wires admin category handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, fmt.Errorf("category store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.runtime), service: newService(m.store)})
	return module.Mount{Prefix: routepath.AdminCategoriesPrefix, Handler: mux}, nil
}
