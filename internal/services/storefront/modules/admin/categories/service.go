package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/catalog/slug"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
)

// DuplicateTitleMessage is shown when the derived slug is already used.
const DuplicateTitleMessage = "Category title exists, choose another."

// Store is the category persistence the module needs.
type Store interface {
	ListCategories(ctx context.Context) ([]storage.Category, error)
	GetCategory(ctx context.Context, id string) (storage.Category, error)
	CreateCategory(ctx context.Context, category storage.Category) error
	UpdateCategory(ctx context.Context, category storage.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// FormError carries user-facing validation messages.
type FormError struct {
	Messages []string
}

func (e FormError) Error() string {
	return strings.Join(e.Messages, "; ")
}

type service struct {
	store Store
}

func newService(store Store) service {
	return service{store: store}
}

func (s service) list(ctx context.Context) ([]storage.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s service) get(ctx context.Context, categoryID string) (storage.Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Category{}, apperrors.NotFound("category not found")
		}
		return storage.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s service) create(ctx context.Context, title string) (storage.Category, error) {
	title, categorySlug, err := normalize(title)
	if err != nil {
		return storage.Category{}, err
	}
	existing, err := s.list(ctx)
	if err != nil {
		return storage.Category{}, err
	}
	sorting := 0
	for _, category := range existing {
		if category.Sorting >= sorting {
			sorting = category.Sorting + 1
		}
	}
	categoryID, err := id.NewID()
	if err != nil {
		return storage.Category{}, err
	}
	category := storage.Category{ID: categoryID, Slug: categorySlug, Title: title, Sorting: sorting}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return storage.Category{}, duplicate(err, "create category")
	}
	return category, nil
}

// update renames a category. Products keep their stored category slug.
func (s service) update(ctx context.Context, categoryID, title string) (storage.Category, error) {
	category, err := s.get(ctx, categoryID)
	if err != nil {
		return storage.Category{}, err
	}
	category.Title, category.Slug, err = normalize(title)
	if err != nil {
		return storage.Category{}, err
	}
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return storage.Category{}, duplicate(err, "update category")
	}
	return category, nil
}

func (s service) delete(ctx context.Context, categoryID string) error {
	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("category not found")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func normalize(title string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", FormError{Messages: []string{"Title must not be empty"}}
	}
	categorySlug := slug.Make(title)
	if categorySlug == "" {
		return title, "", FormError{Messages: []string{"Title must contain letters or digits"}}
	}
	return title, categorySlug, nil
}

func duplicate(err error, op string) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return FormError{Messages: []string{DuplicateTitleMessage}}
	}
	return fmt.Errorf("%s: %w", op, err)
}
