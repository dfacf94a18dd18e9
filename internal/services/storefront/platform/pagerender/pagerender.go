// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

// ModulePage describes a full-page module response.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// WritePage renders page inside the site layout. The body is rendered into
// a buffer first so a render failure never leaves a partial response.
func WritePage(w http.ResponseWriter, r *http.Request, runtime module.Runtime, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	data := templates.LayoutData{
		Title:      page.Title,
		Pages:      runtime.Navigation.Pages(),
		Categories: runtime.Navigation.Categories(),
	}
	if runtime.Sessions != nil {
		data.Viewer = runtime.Sessions.Viewer(r)
	}
	if notice, ok := flash.ReadAndClear(w, r, runtime.SchemePolicy); ok {
		data.Flash = &templates.Flash{Kind: string(notice.Kind), Message: notice.Message}
	}

	var buf bytes.Buffer
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	if err := templates.Layout(data).Render(ctx, &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.Bytes())
}
