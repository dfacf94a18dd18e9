package products

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsIndex, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsCategoryPattern, h.handleCategory)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsCategoryPattern+"/{$}", h.handleCategory)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductDetailPattern, h.handleDetail)
	mux.HandleFunc(routepath.ProductsPrefix+"{category}/{product}/{rest...}", h.handleNotFound)
}
