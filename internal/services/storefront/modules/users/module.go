// Package users serves account registration, login and logout.
package users

import (
	"fmt"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"golang.org/x/crypto/bcrypt"
)

// Module provides account routes.
type Module struct {
	store      Store
	runtime    module.Runtime
	bcryptCost int
}

// Option customizes a users module.
type Option func(*Module)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(m *Module) {
		m.bcryptCost = cost
	}
}

// New returns a users module.
func New(store Store, runtime module.Runtime, opts ...Option) Module {
	m := Module{store: store, runtime: runtime, bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "users" }

// Mount wires account handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, fmt.Errorf("user store is required")
	}
	if m.runtime.Sessions == nil {
		return module.Mount{}, fmt.Errorf("sessions are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{
		Base:    modulehandler.NewBase(m.runtime),
		service: newService(m.store, m.bcryptCost),
	})
	return module.Mount{Prefix: routepath.UsersPrefix, Handler: mux}, nil
}
