package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
)

// Cart update actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionClear  = "clear"
)

// Store is the persistence the cart needs.
type Store interface {
	FindProduct(ctx context.Context, slug string) (storage.Product, bool, error)
	ListCartItems(ctx context.Context, sessionID string) ([]storage.CartItem, error)
	AddCartItem(ctx context.Context, sessionID string, item storage.CartItem) error
	DecrementCartItem(ctx context.Context, sessionID, productSlug string) error
	RemoveCartItem(ctx context.Context, sessionID, productSlug string) error
	ClearCart(ctx context.Context, sessionID string) error
}

// Summary is the cart contents with its grand total.
type Summary struct {
	Items      []storage.CartItem
	TotalCents int64
}

type service struct {
	store Store
}

func newService(store Store) service {
	return service{store: store}
}

func (s service) product(ctx context.Context, slug string) (storage.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return storage.Product{}, apperrors.NotFound("product not found")
	}
	product, found, err := s.store.FindProduct(ctx, slug)
	if err != nil {
		return storage.Product{}, fmt.Errorf("find product %q: %w", slug, err)
	}
	if !found {
		return storage.Product{}, apperrors.NotFound("product not found")
	}
	return product, nil
}

func (s service) add(ctx context.Context, sessionID string, product storage.Product) error {
	err := s.store.AddCartItem(ctx, sessionID, storage.CartItem{
		ProductID:   product.ID,
		ProductSlug: product.Slug,
		Title:       product.Title,
		PriceCents:  product.PriceCents,
		Image:       product.Image,
	})
	if err != nil {
		return fmt.Errorf("add %q to cart: %w", product.Slug, err)
	}
	return nil
}

func (s service) update(ctx context.Context, sessionID, productSlug, action string) error {
	switch action {
	case ActionAdd:
		product, err := s.product(ctx, productSlug)
		if err != nil {
			return err
		}
		return s.add(ctx, sessionID, product)
	case ActionRemove:
		if err := s.store.DecrementCartItem(ctx, sessionID, productSlug); err != nil {
			return fmt.Errorf("decrement %q: %w", productSlug, err)
		}
		return nil
	case ActionClear:
		if err := s.store.RemoveCartItem(ctx, sessionID, productSlug); err != nil {
			return fmt.Errorf("remove %q: %w", productSlug, err)
		}
		return nil
	default:
		return apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("unknown cart action %q", action))
	}
}

func (s service) clear(ctx context.Context, sessionID string) error {
	if err := s.store.ClearCart(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s service) summary(ctx context.Context, sessionID string) (Summary, error) {
	if sessionID == "" {
		return Summary{}, nil
	}
	items, err := s.store.ListCartItems(ctx, sessionID)
	if err != nil {
		return Summary{}, fmt.Errorf("list cart items: %w", err)
	}
	summary := Summary{Items: items}
	for _, item := range items {
		summary.TotalCents += item.LineTotalCents()
	}
	return summary, nil
}

func validAction(action string) bool {
	switch action {
	case ActionAdd, ActionRemove, ActionClear:
		return true
	default:
		return false
	}
}
