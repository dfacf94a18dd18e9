// Package pages serves the home page and static content pages.
package pages

import (
	"context"
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// PageFinder looks content pages up by slug.
type PageFinder interface {
	FindPage(ctx context.Context, slug string) (storage.Page, bool, error)
}

// Module provides content page routes.
type Module struct {
	pages   PageFinder
	runtime module.Runtime
}

// New returns a pages module.
func New(pages PageFinder, runtime module.Runtime) Module {
	return Module{pages: pages, runtime: runtime}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "pages" }

// Mount wires content page handlers at the site root.
func (m Module) Mount() (module.Mount, error) {
	if m.pages == nil {
		return module.Mount{}, fmt.Errorf("page finder is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewBase(m.runtime), pages: m.pages})
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
