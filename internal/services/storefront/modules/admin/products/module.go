// Package products serves admin CRUD for products and their images.
package products

import (
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module provides admin product routes.
type Module struct {
	store   Store
	images  Images
	runtime module.Runtime
}

// New returns an admin products module.
func New(store Store, images Images, runtime module.Runtime) Module {
	return Module{store: store, images: images, runtime: runtime}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin-products" }

// Mount wires admin product handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil || m.images == nil {
		return module.Mount{}, fmt.Errorf("product store and images are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.runtime), service: newService(m.store, m.images)})
	return module.Mount{Prefix: routepath.AdminProductsPrefix, Handler: mux}, nil
}
