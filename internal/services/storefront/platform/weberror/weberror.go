// Package weberror renders shared error responses for storefront modules.
package weberror

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
	"go.uber.org/zap"
)

// ShouldRenderErrorPage reports whether status should use the layout error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// WriteErrorPage writes the layout error page for statusCode.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, runtime module.Runtime) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	err := pagerender.WritePage(w, r, runtime, pagerender.ModulePage{
		Title:      templates.ErrorPageTitle(statusCode),
		StatusCode: statusCode,
		Fragment:   templates.ErrorState(statusCode),
	})
	if err != nil {
		logger(runtime).Error("render error page", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.WriteText(w, statusCode, http.StatusText(statusCode))
	}
}

// WriteModuleError maps err to a response. Server errors are logged with
// their cause; 404 and 5xx use the error page, everything else plain text.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, runtime module.Runtime) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		logger(runtime).Error("request failed",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode, runtime)
		return
	}
	httpx.WriteText(w, statusCode, apperrors.PublicMessage(err))
}

func logger(runtime module.Runtime) *zap.Logger {
	if runtime.Logger == nil {
		return zap.NewNop()
	}
	return runtime.Logger
}
