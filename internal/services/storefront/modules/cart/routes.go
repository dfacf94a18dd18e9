package cart

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.CartAddPattern, h.handleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.CartAddPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.CartCheckout, h.handleCheckout)
	mux.HandleFunc(http.MethodPost+" "+routepath.CartUpdatePattern, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.CartUpdatePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.CartClear, h.handleClear)
	mux.HandleFunc(http.MethodGet+" "+routepath.CartClear, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.CartPrefix, h.handleNotFound)
}
