package products

import (
	"net/http"

	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, runtime module.Runtime) handlers {
	return handlers{Base: modulehandler.NewBase(runtime), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.listAll(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeListing(w, r, listing)
}

func (h handlers) handleCategory(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.listByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeListing(w, r, listing)
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.detail(r.Context(), r.PathValue("product"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	product := detail.Product
	view := templates.ProductDetailView{
		Title:       product.Title,
		Description: product.Description,
		Price:       h.FormatPrice(product.PriceCents),
		ImageURL:    routepath.ProductImage(product.ID, product.Image),
		Gallery:     make([]templates.GalleryImage, 0, len(detail.Gallery)),
		SignedIn:    h.Principal(r).SignedIn(),
		AddAction:   routepath.CartAdd(product.Slug),
	}
	for _, name := range detail.Gallery {
		view.Gallery = append(view.Gallery, templates.GalleryImage{
			URL:      gallery.GalleryPath(product.ID, name),
			ThumbURL: gallery.ThumbPath(product.ID, name),
		})
	}
	h.WritePage(w, r, product.Title, http.StatusOK, templates.ProductDetail(view))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writeListing(w http.ResponseWriter, r *http.Request, listing Listing) {
	h.WritePage(w, r, listing.Heading, http.StatusOK, templates.ProductList(templates.ProductListView{
		Heading:  listing.Heading,
		Products: productCards(listing.Products, h.FormatPrice),
	}))
}

func productCards(products []storage.Product, formatPrice func(int64) string) []templates.ProductCard {
	cards := make([]templates.ProductCard, 0, len(products))
	for _, product := range products {
		cards = append(cards, templates.ProductCard{
			Title:    product.Title,
			URL:      routepath.ProductDetail(product.CategorySlug, product.Slug),
			ImageURL: routepath.ProductImage(product.ID, product.Image),
			Price:    formatPrice(product.PriceCents),
		})
	}
	return cards
}
