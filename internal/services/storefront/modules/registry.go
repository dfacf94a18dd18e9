// Package modules assembles the storefront module groups.
package modules

import (
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	admincategories "github.com/louisbranch/storefront/internal/services/storefront/modules/admin/categories"
	adminpages "github.com/louisbranch/storefront/internal/services/storefront/modules/admin/pages"
	adminproducts "github.com/louisbranch/storefront/internal/services/storefront/modules/admin/products"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/cart"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/pages"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/products"
	"github.com/louisbranch/storefront/internal/services/storefront/modules/users"
)

// Store is the union of persistence needed by every module.
type Store interface {
	products.Catalog
	pages.PageFinder
	cart.Store
	users.Store
	adminpages.Store
	admincategories.Store
	adminproducts.Store
}

// Images is the product image storage used by the catalog and admin.
type Images interface {
	adminproducts.Images
}

// Dependencies are the collaborators shared by module constructors.
type Dependencies struct {
	Store   Store
	Images  Images
	Runtime module.Runtime
	// BcryptCost overrides the password hashing cost when positive.
	BcryptCost int
}

// DefaultPublicModules returns the customer-facing modules. Pages is last
// because it owns the root prefix.
func DefaultPublicModules(deps Dependencies) []module.Module {
	var userOpts []users.Option
	if deps.BcryptCost > 0 {
		userOpts = append(userOpts, users.WithBcryptCost(deps.BcryptCost))
	}
	return []module.Module{
		products.New(deps.Store, deps.Images, deps.Runtime),
		cart.New(deps.Store, deps.Runtime),
		users.New(deps.Store, deps.Runtime, userOpts...),
		pages.New(deps.Store, deps.Runtime),
	}
}

// DefaultAdminModules returns the back-office modules mounted under /admin/.
func DefaultAdminModules(deps Dependencies) []module.Module {
	return []module.Module{
		adminpages.New(deps.Store, deps.Runtime),
		admincategories.New(deps.Store, deps.Runtime),
		adminproducts.New(deps.Store, deps.Images, deps.Runtime),
	}
}
