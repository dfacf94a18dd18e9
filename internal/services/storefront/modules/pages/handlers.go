package pages

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

type handlers struct {
	modulehandler.Base
	pages PageFinder
}

// handleHome renders the home page; a missing home page is a 404.
func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	page, found, err := h.pages.FindPage(r.Context(), routepath.HomePageSlug)
	if err != nil {
		h.WriteError(w, r, fmt.Errorf("find home page: %w", err))
		return
	}
	if !found {
		h.WriteNotFound(w, r)
		return
	}
	h.writePage(w, r, page)
}

// handlePage renders a content page; unknown slugs go back home.
func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == routepath.HomePageSlug {
		h.Redirect(w, r, routepath.Root, nil)
		return
	}
	page, found, err := h.pages.FindPage(r.Context(), slug)
	if err != nil {
		h.WriteError(w, r, fmt.Errorf("find page %q: %w", slug, err))
		return
	}
	if !found {
		h.Redirect(w, r, routepath.Root, nil)
		return
	}
	h.writePage(w, r, page)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page storage.Page) {
	h.WritePage(w, r, page.Title, http.StatusOK, templates.ContentPage(templates.ContentPageView{
		Title:   page.Title,
		Content: page.Content,
	}))
}
