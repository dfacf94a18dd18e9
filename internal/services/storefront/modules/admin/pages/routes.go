package pages

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPages, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPagesPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPagesAdd, h.handleAddForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPagesAdd, h.handleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPageEditPattern, h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPageEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPageDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPageDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminPagesReorder, h.handleReorder)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPagesReorder, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.AdminPagesPrefix, h.handleNotFound)
}
