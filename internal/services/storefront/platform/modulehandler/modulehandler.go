// Package modulehandler provides a composable base for storefront module
// handlers.
//
// Modules embed Base to share principal resolution, flash notices, page
// rendering and error writing.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/weberror"
	"go.uber.org/zap"
)

// Base carries the shared runtime used by module handlers.
type Base struct {
	runtime module.Runtime
}

// NewBase builds a handler base from runtime.
func NewBase(runtime module.Runtime) Base {
	return Base{runtime: runtime}
}

// Logger returns the module logger.
func (b Base) Logger() *zap.Logger {
	if b.runtime.Logger == nil {
		return zap.NewNop()
	}
	return b.runtime.Logger
}

// Principal resolves the request's session identity.
func (b Base) Principal(r *http.Request) module.Principal {
	if b.runtime.Sessions == nil {
		return module.Principal{}
	}
	return b.runtime.Sessions.Principal(r)
}

// Sessions returns the session manager.
func (b Base) Sessions() module.Sessions {
	return b.runtime.Sessions
}

// FormatPrice renders cents in the configured currency.
func (b Base) FormatPrice(cents int64) string {
	return b.runtime.Money.Format(cents)
}

// WritePage renders a full page with the given title and fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WritePage(w, r, b.runtime, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.runtime)
}

// WriteNotFound renders a 404 error page within the layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound, b.runtime)
}

// Flash stores a notice for the next rendered page.
func (b Base) Flash(w http.ResponseWriter, r *http.Request, notice flash.Notice) {
	flash.Write(w, r, notice, b.runtime.SchemePolicy)
}

// Redirect sends the client to location, optionally with a notice.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string, notice *flash.Notice) {
	if notice != nil {
		b.Flash(w, r, *notice)
	}
	httpx.WriteRedirect(w, r, location)
}
