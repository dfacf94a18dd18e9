package products

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminProducts, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminProductsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminProductsAdd, h.handleAddForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminProductsAdd, h.handleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminProductEditPattern, h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminProductEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminProductDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminProductDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminProductGalleryPattern, h.handleGalleryUpload)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminProductGalleryPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminProductGalleryDeletePattern, h.handleGalleryDelete)
	mux.HandleFunc(routepath.AdminProductsPrefix, h.handleNotFound)
}
