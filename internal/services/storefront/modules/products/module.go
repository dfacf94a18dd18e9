// Package products serves the storefront catalog: the full product
// listing, category listings and product detail pages.
package products

import (
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Module provides public catalog routes.
type Module struct {
	catalog Catalog
	gallery GalleryLister
	runtime module.Runtime
}

// New returns a products module.
func New(catalog Catalog, gallery GalleryLister, runtime module.Runtime) Module {
	return Module{catalog: catalog, gallery: gallery, runtime: runtime}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "products" }

// Mount wires catalog route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.catalog == nil || m.gallery == nil {
		return module.Mount{}, fmt.Errorf("catalog and gallery are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.catalog, m.gallery), m.runtime))
	return module.Mount{Prefix: routepath.ProductsPrefix, Handler: mux}, nil
}
