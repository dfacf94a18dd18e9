package categories

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCategories, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCategoriesPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCategoriesAdd, h.handleAddForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminCategoriesAdd, h.handleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCategoryEditPattern, h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminCategoryEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminCategoryDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminCategoryDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.AdminCategoriesPrefix, h.handleNotFound)
}
