// Package cart serves the per-session shopping cart.
package cart

import (
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module provides cart routes.
type Module struct {
	store   Store
	runtime module.Runtime
}

// New returns a cart module.
func New(store Store, runtime module.Runtime) Module {
	return Module{store: store, runtime: runtime}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "cart" }

// Mount wires cart handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, fmt.Errorf("cart store is required")
	}
	if m.runtime.Sessions == nil {
		return module.Mount{}, fmt.Errorf("sessions are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.runtime), service: newService(m.store)})
	return module.Mount{Prefix: routepath.CartPrefix, Handler: mux}, nil
}
