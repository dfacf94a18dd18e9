package users

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersRegister, h.handleRegisterForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.UsersRegister, h.handleRegister)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersLogin, h.handleLoginForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.UsersLogin, h.handleLogin)
	mux.HandleFunc(http.MethodPost+" "+routepath.UsersLogout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersLogout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.UsersPrefix, h.handleNotFound)
}
