// Package templates holds the storefront HTML components. Components are
// written in .templ files; the _templ.go files are generated from them.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/storefront/internal/services/catalog/navigation"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
)

const siteName = "Storefront"

// Flash is a one-time notice shown above page content.
type Flash struct {
	Kind    string
	Message string
}

// LayoutData carries shared page chrome.
type LayoutData struct {
	Title      string
	Viewer     module.Viewer
	Pages      []navigation.Link
	Categories []navigation.Link
	Flash      *Flash
}

// PageTitle formats the browser title for a page.
func PageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}

// safeURL sanitizes URLs for attributes templ does not treat as URLs, such as img src.
func safeURL(s string) string {
	return string(templ.URL(s))
}
