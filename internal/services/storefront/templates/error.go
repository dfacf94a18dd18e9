package templates

import (
	"net/http"

	"github.com/a-h/templ"
)

// ErrorPageTitle returns the browser title for error pages.
func ErrorPageTitle(statusCode int) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return "Page not found"
	}
	return "Something went wrong"
}

// ErrorState renders the error page body.
func ErrorState(statusCode int) templ.Component {
	return errorState(normalizeErrorStatus(statusCode))
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
