package cart

import (
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

// Flash messages.
const (
	ProductAddedMessage = "Product added!"
	CartUpdatedMessage  = "Cart updated!"
	CartClearedMessage  = "Cart cleared!"
)

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.product(r.Context(), r.PathValue("product"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	principal, err := h.Sessions().Ensure(w, r)
	if err != nil {
		h.WriteError(w, r, fmt.Errorf("ensure session: %w", err))
		return
	}
	if err := h.service.add(r.Context(), principal.SessionID, product); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success(ProductAddedMessage)
	h.Redirect(w, r, routepath.ProductDetail(product.CategorySlug, product.Slug), &notice)
}

func (h handlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.summary(r.Context(), h.Principal(r).SessionID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view := templates.CartView{
		Lines: make([]templates.CartLine, 0, len(summary.Items)),
		Total: h.FormatPrice(summary.TotalCents),
	}
	for _, item := range summary.Items {
		view.Lines = append(view.Lines, templates.CartLine{
			Title:        item.Title,
			ImageURL:     routepath.ProductImage(item.ProductID, item.Image),
			Quantity:     item.Quantity,
			Price:        h.FormatPrice(item.PriceCents),
			LineTotal:    h.FormatPrice(item.LineTotalCents()),
			AddAction:    routepath.CartUpdate(item.ProductSlug, ActionAdd),
			RemoveAction: routepath.CartUpdate(item.ProductSlug, ActionRemove),
			ClearAction:  routepath.CartUpdate(item.ProductSlug, ActionClear),
		})
	}
	h.WritePage(w, r, "Checkout", http.StatusOK, templates.Checkout(view))
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimSpace(r.URL.Query().Get("action"))
	if !validAction(action) {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("unknown cart action %q", action)))
		return
	}
	principal, err := h.Sessions().Ensure(w, r)
	if err != nil {
		h.WriteError(w, r, fmt.Errorf("ensure session: %w", err))
		return
	}
	if err := h.service.update(r.Context(), principal.SessionID, r.PathValue("product"), action); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success(CartUpdatedMessage)
	h.Redirect(w, r, routepath.CartCheckout, &notice)
}

func (h handlers) handleClear(w http.ResponseWriter, r *http.Request) {
	if sessionID := h.Principal(r).SessionID; sessionID != "" {
		if err := h.service.clear(r.Context(), sessionID); err != nil {
			h.WriteError(w, r, err)
			return
		}
	}
	notice := flash.Success(CartClearedMessage)
	h.Redirect(w, r, routepath.CartCheckout, &notice)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
