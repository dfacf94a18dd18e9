// Package routepath stores canonical HTTP paths for storefront modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root          = "/"
	Health        = "/up"
	StaticPrefix  = "/static/"
	ImagesPrefix  = "/product_images/"
	NoImage       = StaticPrefix + "noimage.svg"
	HomePageSlug  = "home"
	PagePattern   = "/{slug}"
	ProductsIndex = "/products"

	ProductsPrefix          = "/products/"
	ProductsCategoryPattern = ProductsPrefix + "{category}"
	ProductDetailPattern    = ProductsPrefix + "{category}/{product}"

	CartPrefix        = "/cart/"
	CartAddPattern    = CartPrefix + "add/{product}"
	CartCheckout      = "/cart/checkout"
	CartUpdatePattern = CartPrefix + "update/{product}"
	CartClear         = "/cart/clear"

	UsersPrefix   = "/users/"
	UsersRegister = "/users/register"
	UsersLogin    = "/users/login"
	UsersLogout   = "/users/logout"

	AdminPrefix = "/admin/"

	AdminPagesPrefix       = "/admin/pages/"
	AdminPages             = "/admin/pages"
	AdminPagesAdd          = "/admin/pages/add"
	AdminPagesReorder      = "/admin/pages/reorder"
	AdminPageEditPattern   = AdminPagesPrefix + "{id}/edit"
	AdminPageDeletePattern = AdminPagesPrefix + "{id}/delete"

	AdminCategoriesPrefix      = "/admin/categories/"
	AdminCategories            = "/admin/categories"
	AdminCategoriesAdd         = "/admin/categories/add"
	AdminCategoryEditPattern   = AdminCategoriesPrefix + "{id}/edit"
	AdminCategoryDeletePattern = AdminCategoriesPrefix + "{id}/delete"

	AdminProductsPrefix              = "/admin/products/"
	AdminProducts                    = "/admin/products"
	AdminProductsAdd                 = "/admin/products/add"
	AdminProductEditPattern          = AdminProductsPrefix + "{id}/edit"
	AdminProductDeletePattern        = AdminProductsPrefix + "{id}/delete"
	AdminProductGalleryPattern       = AdminProductsPrefix + "{id}/gallery"
	AdminProductGalleryDeletePattern = AdminProductsPrefix + "{id}/gallery/{image}/delete"
)

// Page returns the content page URL for slug.
func Page(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == HomePageSlug {
		return Root
	}
	return Root + escapeSegment(slug)
}

// ProductsCategory returns the listing URL for a category.
func ProductsCategory(category string) string {
	return ProductsPrefix + escapeSegment(category)
}

// ProductDetail returns the product detail URL. The category segment only
// shapes the URL, so uncategorized products use a placeholder.
func ProductDetail(category, product string) string {
	if strings.TrimSpace(category) == "" {
		category = uncategorized
	}
	return ProductsPrefix + escapeSegment(category) + "/" + escapeSegment(product)
}

// ProductImage returns the main image URL, or the placeholder when the
// product has no image.
func ProductImage(productID, image string) string {
	image = strings.TrimSpace(image)
	if image == "" || strings.TrimSpace(productID) == "" {
		return NoImage
	}
	return ImagesPrefix + escapeSegment(productID) + "/" + escapeSegment(image)
}

// CartAdd returns the add-to-cart form action for a product.
func CartAdd(product string) string {
	return CartPrefix + "add/" + escapeSegment(product)
}

// CartUpdate returns the quantity update action for a product.
func CartUpdate(product, action string) string {
	return CartPrefix + "update/" + escapeSegment(product) + "?action=" + url.QueryEscape(action)
}

// AdminPageEdit returns the admin page edit URL.
func AdminPageEdit(id string) string {
	return AdminPagesPrefix + escapeSegment(id) + "/edit"
}

// AdminPageDelete returns the admin page delete action.
func AdminPageDelete(id string) string {
	return AdminPagesPrefix + escapeSegment(id) + "/delete"
}

// AdminCategoryEdit returns the admin category edit URL.
func AdminCategoryEdit(id string) string {
	return AdminCategoriesPrefix + escapeSegment(id) + "/edit"
}

// AdminCategoryDelete returns the admin category delete action.
func AdminCategoryDelete(id string) string {
	return AdminCategoriesPrefix + escapeSegment(id) + "/delete"
}

// AdminProductEdit returns the admin product edit URL.
func AdminProductEdit(id string) string {
	return AdminProductsPrefix + escapeSegment(id) + "/edit"
}

// AdminProductDelete returns the admin product delete action.
func AdminProductDelete(id string) string {
	return AdminProductsPrefix + escapeSegment(id) + "/delete"
}

// AdminProductGallery returns the gallery upload action.
func AdminProductGallery(id string) string {
	return AdminProductsPrefix + escapeSegment(id) + "/gallery"
}

// AdminProductGalleryDelete returns the gallery image delete action.
func AdminProductGalleryDelete(id, image string) string {
	return AdminProductsPrefix + escapeSegment(id) + "/gallery/" + escapeSegment(image) + "/delete"
}

// ReservedPageSlug reports whether slug is the first segment of a module
// route, so a content page at that slug could never be reached.
func ReservedPageSlug(slug string) bool {
	slug = strings.TrimSpace(slug)
	for _, prefix := range []string{ProductsPrefix, CartPrefix, UsersPrefix, AdminPrefix, StaticPrefix, ImagesPrefix, Health} {
		if slug == strings.Trim(prefix, "/") {
			return true
		}
	}
	return false
}

const uncategorized = "all"

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
